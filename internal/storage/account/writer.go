package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/money-movement/internal/storage/scope"
)

var _ IWriter = (*Writer)(nil)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindScopedForUpdate locks the row until the enclosing transaction ends.
func (w *Writer) FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*Account, error) {
	return w.find(ctx, s, id, true)
}

func (w *Writer) Insert(ctx context.Context, create *AccountCreate) error {
	q := psql.Insert(
		im.Into("accounts", "id", "user_id", "household_id", "entity_id", "name", "type", "sub_type", "balance_cents"),
		im.Values(
			psql.Arg(create.ID),
			psql.Arg(create.Scope.UserID),
			psql.Arg(create.Scope.HouseholdID),
			psql.Arg(create.EntityID),
			psql.Arg(create.Name),
			psql.Arg(int16(create.Type)),
			psql.Arg(create.SubType),
			psql.Arg(create.BalanceCents),
		),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return errors.Wrap(err, "accounts.Insert")
}

// UpdateScopedBalance writes an absolute balance. A row that does not match
// id, user and household is never touched and yields ErrNotFound.
func (w *Writer) UpdateScopedBalance(ctx context.Context, s scope.Scope, id uuid.UUID, balanceCents int64) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance_cents").ToArg(balanceCents),
		um.Where(s.Where(id)),
	)
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return errors.Wrap(err, "accounts.UpdateScopedBalance")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "accounts.UpdateScopedBalance.RowsAffected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
