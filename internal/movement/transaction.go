package movement

import (
	"context"

	"github.com/pkg/errors"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
)

var ErrInvalidMovement = errors.New("movement: invalid transaction movement")

// BalanceDelta is the signed effect a transaction of type t has on its own
// account. Account type never changes the sign.
func BalanceDelta(t transaction.Type, amountCents int64) (int64, error) {
	switch t {
	case transaction.TypeIncome, transaction.TypeTransferIn:
		return amountCents, nil
	case transaction.TypeExpense, transaction.TypeTransferOut:
		return -amountCents, nil
	}
	return 0, errors.Wrapf(ErrInvalidMovement, "unknown type %q", string(t))
}

func validateMovement(fields *transaction.TransactionCreate) error {
	if fields.AmountCents < 0 {
		return errors.Wrap(ErrInvalidMovement, "negative amount")
	}
	if !fields.Type.Valid() {
		return errors.Wrapf(ErrInvalidMovement, "unknown type %q", string(fields.Type))
	}
	if fields.Type.IsTransfer() {
		if !fields.TransferID.Valid || !fields.PairedTransactionID.Valid {
			return errors.Wrap(ErrInvalidMovement, "transfer leg without linkage")
		}
		if fields.CategoryID.Valid || fields.MerchantID.Valid {
			return errors.Wrap(ErrInvalidMovement, "transfer leg with category or merchant")
		}
	}
	return nil
}

// InsertTransactionMovement inserts one row and posts its balance delta to the
// owning account, both inside w.
func InsertTransactionMovement(ctx context.Context, w *storage.Writer, fields *transaction.TransactionCreate) error {
	if err := validateMovement(fields); err != nil {
		return err
	}
	delta, err := BalanceDelta(fields.Type, fields.AmountCents)
	if err != nil {
		return err
	}

	return postDelta(ctx, w, fields.Scope, fields.AccountID, delta, func() error {
		return w.Transactions.Insert(ctx, fields)
	})
}

// RemoveTransactionMovement deletes txn and reverses exactly the delta it
// posted.
func RemoveTransactionMovement(ctx context.Context, w *storage.Writer, s scope.Scope, txn *transaction.Transaction) error {
	delta, err := BalanceDelta(txn.Type, txn.AmountCents)
	if err != nil {
		return err
	}

	return postDelta(ctx, w, s, txn.AccountID, -delta, func() error {
		return w.Transactions.Delete(ctx, s, txn.ID)
	})
}
