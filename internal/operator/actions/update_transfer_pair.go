package actions

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// UpdateTransferPair changes description and notes on the ledger row and
// every leg it can find. Amount, accounts and date are immutable.
type UpdateTransferPair struct {
	Scope       scope.Scope
	Ref         TransferRef
	Description omit.Val[string]
	Notes       omit.Val[string]

	TransferGroupID       uuid.UUID
	UpdatedTransactionIDs []uuid.UUID
}

func (u *UpdateTransferPair) Perform(ctx context.Context, w *storage.Writer) error {
	const op = "updateCanonicalTransferPairByTransactionId"

	if !u.Description.IsValue() && !u.Notes.IsValue() {
		return domainerr.Validation(op, "nothing to update")
	}

	t, err := resolveTransfer(ctx, w, u.Scope, u.Ref, op)
	if err != nil {
		return classify(op, err)
	}

	legs, err := lockTransferLegs(ctx, w, u.Scope, t)
	if err != nil {
		return classify(op, err)
	}

	updated := make([]uuid.UUID, 0, len(legs))
	for _, leg := range legs {
		if err := w.Transactions.UpdateMetadata(ctx, u.Scope, leg.ID, u.Description, u.Notes); err != nil {
			return classify(op, err)
		}
		updated = append(updated, leg.ID)
	}

	if err := w.Transfers.UpdateMetadata(ctx, u.Scope, t.ID, u.Description, u.Notes); err != nil {
		return classify(op, err)
	}

	u.TransferGroupID = t.ID
	u.UpdatedTransactionIDs = updated
	return nil
}
