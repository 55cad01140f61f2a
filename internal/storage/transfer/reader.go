package transfer

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/money-movement/internal/storage/scope"
)

var _ IReader = (*Reader)(nil)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindScoped(ctx context.Context, s scope.Scope, id uuid.UUID) (*Transfer, error) {
	q := psql.Select(
		sm.Columns(transferColumns...),
		sm.From("transfers"),
		sm.Where(s.Where(id)),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[transferRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "transfers.FindScoped")
	}
	return rowToTransfer(row), nil
}
