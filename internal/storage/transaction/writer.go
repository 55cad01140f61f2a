package transaction

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

func (w *Writer) FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*Transaction, error) {
	return w.find(ctx, s, id, true)
}

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) error {
	q := psql.Insert(
		im.Into("transactions",
			"id", "user_id", "household_id", "account_id", "date", "amount_cents", "type",
			"description", "category_id", "merchant_id", "notes", "is_pending", "transfer_id",
			"paired_transaction_id", "transfer_source_account_id", "transfer_destination_account_id",
		),
		im.Values(
			psql.Arg(create.ID),
			psql.Arg(create.Scope.UserID),
			psql.Arg(create.Scope.HouseholdID),
			psql.Arg(create.AccountID),
			psql.Arg(create.Date),
			psql.Arg(create.AmountCents),
			psql.Arg(string(create.Type)),
			psql.Arg(create.Description),
			psql.Arg(create.CategoryID),
			psql.Arg(create.MerchantID),
			psql.Arg(create.Notes),
			psql.Arg(create.IsPending),
			psql.Arg(create.TransferID),
			psql.Arg(create.PairedTransactionID),
			psql.Arg(create.TransferSourceAccountID),
			psql.Arg(create.TransferDestinationAccountID),
		),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return errors.Wrap(err, "transactions.Insert")
}

// LinkAsTransfer re-types the row and clears category and merchant. Amount,
// account and date are left alone.
func (w *Writer) LinkAsTransfer(ctx context.Context, s scope.Scope, id uuid.UUID, link *TransferLink) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("type").ToArg(string(link.Type)),
		um.SetCol("category_id").To(psql.Raw("NULL")),
		um.SetCol("merchant_id").To(psql.Raw("NULL")),
		um.SetCol("transfer_id").ToArg(link.TransferID),
		um.SetCol("paired_transaction_id").ToArg(link.PairedTransactionID),
		um.SetCol("transfer_source_account_id").ToArg(link.SourceAccountID),
		um.SetCol("transfer_destination_account_id").ToArg(link.DestinationAccountID),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(s.Where(id)),
	)
	return w.execOne(ctx, "transactions.LinkAsTransfer", q)
}

func (w *Writer) UpdateMetadata(ctx context.Context, s scope.Scope, id uuid.UUID, description, notes omit.Val[string]) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(s.Where(id)),
	}
	if v, ok := description.Get(); ok {
		queryMods = append(queryMods, um.SetCol("description").ToArg(v))
	}
	if v, ok := notes.Get(); ok {
		queryMods = append(queryMods, um.SetCol("notes").ToArg(v))
	}
	return w.execOne(ctx, "transactions.UpdateMetadata", psql.Update(queryMods...))
}

func (w *Writer) Delete(ctx context.Context, s scope.Scope, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(s.Where(id)),
	)
	return w.execOne(ctx, "transactions.Delete", q)
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
