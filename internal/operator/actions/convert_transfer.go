package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/movement"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

// ConvertToTransfer turns a categorized income or expense into one leg of a
// transfer and creates the opposite leg on CounterpartAccountID. The
// existing leg keeps its balance effect; only the new leg posts a delta.
type ConvertToTransfer struct {
	Scope                scope.Scope
	TransactionID        uuid.UUID
	CounterpartAccountID uuid.UUID

	Result TransferPairResult
}

func (c *ConvertToTransfer) Perform(ctx context.Context, w *storage.Writer) error {
	const op = "convertTransactionToCanonicalTransfer"

	src, err := w.Transactions.FindScopedForUpdate(ctx, c.Scope, c.TransactionID)
	if err != nil {
		return classify(op, err)
	}
	if src.Type.IsTransfer() || src.IsLinked() {
		return domainerr.Conflict(op, "transaction %s is already part of a transfer", src.ID)
	}
	if !src.Type.Valid() {
		return domainerr.Validation(op, "transaction %s has unknown type %q", src.ID, string(src.Type))
	}
	if src.AccountID == c.CounterpartAccountID {
		return domainerr.Validation(op, "counterpart account must differ from the transaction's account")
	}
	if src.AmountCents <= 0 {
		return domainerr.Validation(op, "transaction %s has no amount to transfer", src.ID)
	}
	for _, accountID := range []uuid.UUID{src.AccountID, c.CounterpartAccountID} {
		if _, err := w.Accounts.FindScoped(ctx, c.Scope, accountID); err != nil {
			return classify(op, err)
		}
	}

	ids, err := newIDs(2)
	if err != nil {
		return domainerr.System(op, err)
	}
	groupID, counterpartTxID := ids[0], ids[1]

	srcType := src.Type.TransferType()
	counterpartType := transaction.TypeTransferIn
	fromAccountID, toAccountID := src.AccountID, c.CounterpartAccountID
	fromTxID, toTxID := src.ID, counterpartTxID
	if srcType == transaction.TypeTransferIn {
		counterpartType = transaction.TypeTransferOut
		fromAccountID, toAccountID = toAccountID, fromAccountID
		fromTxID, toTxID = toTxID, fromTxID
	}

	err = w.Transactions.LinkAsTransfer(ctx, c.Scope, src.ID, &transaction.TransferLink{
		Type:                 srcType,
		TransferID:           groupID,
		PairedTransactionID:  counterpartTxID,
		SourceAccountID:      fromAccountID,
		DestinationAccountID: toAccountID,
	})
	if err != nil {
		return classify(op, err)
	}

	err = movement.InsertTransactionMovement(ctx, w, &transaction.TransactionCreate{
		ID:                           counterpartTxID,
		Scope:                        c.Scope,
		AccountID:                    c.CounterpartAccountID,
		Date:                         src.Date,
		AmountCents:                  src.AmountCents,
		Type:                         counterpartType,
		Description:                  src.Description,
		Notes:                        src.Notes,
		IsPending:                    src.IsPending,
		TransferID:                   uuid.NullUUID{UUID: groupID, Valid: true},
		PairedTransactionID:          uuid.NullUUID{UUID: src.ID, Valid: true},
		TransferSourceAccountID:      uuid.NullUUID{UUID: fromAccountID, Valid: true},
		TransferDestinationAccountID: uuid.NullUUID{UUID: toAccountID, Valid: true},
	})
	if err != nil {
		return classify(op, err)
	}

	err = movement.InsertTransferMovement(ctx, w, &transfer.TransferCreate{
		ID:                groupID,
		Scope:             c.Scope,
		FromAccountID:     fromAccountID,
		ToAccountID:       toAccountID,
		AmountCents:       src.AmountCents,
		Date:              src.Date,
		Description:       src.Description,
		Status:            transfer.StatusCompleted,
		Notes:             src.Notes,
		FromTransactionID: fromTxID,
		ToTransactionID:   toTxID,
	})
	if err != nil {
		return classify(op, err)
	}

	c.Result = TransferPairResult{
		TransferGroupID:   groupID,
		FromTransactionID: fromTxID,
		ToTransactionID:   toTxID,
		FromAccountID:     fromAccountID,
		ToAccountID:       toAccountID,
	}
	return nil
}
