package transaction

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
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

func (r *Reader) FindScoped(ctx context.Context, s scope.Scope, id uuid.UUID) (*Transaction, error) {
	return r.find(ctx, s, id, false)
}

// FindByTransferID returns every leg sharing transferID, transfer_out first.
func (r *Reader) FindByTransferID(ctx context.Context, s scope.Scope, transferID uuid.UUID) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(s.Owner()),
		sm.Where(psql.Quote("transfer_id").EQ(psql.Arg(transferID))),
		sm.OrderBy(psql.Quote("type")).Desc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, errors.Wrap(err, "transactions.FindByTransferID")
	}

	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

func (r *Reader) find(ctx context.Context, s scope.Scope, id uuid.UUID, forUpdate bool) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(s.Where(id)),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "transactions.find")
	}
	return rowToTransaction(row), nil
}
