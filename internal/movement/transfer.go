package movement

import (
	"context"

	"github.com/pkg/errors"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

var ErrInvalidTransfer = errors.New("movement: invalid transfer ledger entry")

// InsertTransferMovement writes the single ledger row for a transfer. It
// never touches balances; the legs do that.
func InsertTransferMovement(ctx context.Context, w *storage.Writer, fields *transfer.TransferCreate) error {
	switch {
	case fields.AmountCents <= 0:
		return errors.Wrap(ErrInvalidTransfer, "amount must be positive")
	case fields.FeesCents < 0:
		return errors.Wrap(ErrInvalidTransfer, "fees must not be negative")
	case fields.FromAccountID == fields.ToAccountID:
		return errors.Wrap(ErrInvalidTransfer, "same account on both sides")
	case !fields.Status.Valid():
		return errors.Wrapf(ErrInvalidTransfer, "unknown status %q", string(fields.Status))
	}
	return w.Transfers.Insert(ctx, fields)
}
