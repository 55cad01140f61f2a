package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/movement"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// DeleteTransferPair removes a transfer's legs and ledger row, reversing
// exactly the delta each leg posted.
type DeleteTransferPair struct {
	Scope scope.Scope
	Ref   TransferRef

	TransferGroupID       uuid.UUID
	DeletedTransactionIDs []uuid.UUID
}

func (d *DeleteTransferPair) Perform(ctx context.Context, w *storage.Writer) error {
	const op = "deleteCanonicalTransferPairByTransactionId"

	t, err := resolveTransfer(ctx, w, d.Scope, d.Ref, op)
	if err != nil {
		return classify(op, err)
	}

	accountIDs := []uuid.UUID{t.FromAccountID, t.ToAccountID}
	legs, err := lockTransferLegs(ctx, w, d.Scope, t)
	if err != nil {
		return classify(op, err)
	}
	for _, leg := range legs {
		accountIDs = append(accountIDs, leg.AccountID)
	}
	if _, err := lockAccounts(ctx, w, d.Scope, accountIDs...); err != nil {
		return classify(op, err)
	}

	deleted := make([]uuid.UUID, 0, len(legs))
	for _, leg := range legs {
		if err := movement.RemoveTransactionMovement(ctx, w, d.Scope, leg); err != nil {
			return classify(op, err)
		}
		deleted = append(deleted, leg.ID)
	}

	if err := w.Transfers.Delete(ctx, d.Scope, t.ID); err != nil {
		return classify(op, err)
	}

	d.TransferGroupID = t.ID
	d.DeletedTransactionIDs = deleted
	return nil
}
