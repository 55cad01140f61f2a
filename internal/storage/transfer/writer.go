package transfer

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
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

func (w *Writer) Insert(ctx context.Context, create *TransferCreate) error {
	q := psql.Insert(
		im.Into("transfers",
			"id", "user_id", "household_id", "from_account_id", "to_account_id", "amount_cents",
			"fees_cents", "date", "description", "status", "notes", "from_transaction_id",
			"to_transaction_id",
		),
		im.Values(
			psql.Arg(create.ID),
			psql.Arg(create.Scope.UserID),
			psql.Arg(create.Scope.HouseholdID),
			psql.Arg(create.FromAccountID),
			psql.Arg(create.ToAccountID),
			psql.Arg(create.AmountCents),
			psql.Arg(create.FeesCents),
			psql.Arg(create.Date),
			psql.Arg(create.Description),
			psql.Arg(string(create.Status)),
			psql.Arg(create.Notes),
			psql.Arg(create.FromTransactionID),
			psql.Arg(create.ToTransactionID),
		),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return errors.Wrap(err, "transfers.Insert")
}

func (w *Writer) UpdateMetadata(ctx context.Context, s scope.Scope, id uuid.UUID, description, notes omit.Val[string]) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transfers"),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(s.Where(id)),
	}
	if v, ok := description.Get(); ok {
		queryMods = append(queryMods, um.SetCol("description").ToArg(v))
	}
	if v, ok := notes.Get(); ok {
		queryMods = append(queryMods, um.SetCol("notes").ToArg(v))
	}
	return w.execOne(ctx, "transfers.UpdateMetadata", psql.Update(queryMods...))
}

func (w *Writer) Delete(ctx context.Context, s scope.Scope, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transfers"),
		dm.Where(s.Where(id)),
	)
	return w.execOne(ctx, "transfers.Delete", q)
}

func (w *Writer) execOne(ctx context.Context, op string, q bob.Query) error {
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return errors.Wrap(err, op)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op+".RowsAffected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
