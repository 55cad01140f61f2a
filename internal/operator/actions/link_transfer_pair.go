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

// LinkTransferPair re-types two existing opposite-direction transactions as
// the legs of one transfer. Both already posted their balance effect, and a
// transfer leg has the same effect as the income or expense it replaces, so
// no balance is touched.
type LinkTransferPair struct {
	Scope               scope.Scope
	FirstTransactionID  uuid.UUID
	SecondTransactionID uuid.UUID

	Result TransferPairResult
}

func (l *LinkTransferPair) Perform(ctx context.Context, w *storage.Writer) error {
	const op = "linkExistingTransactionsAsCanonicalTransfer"

	if l.FirstTransactionID == l.SecondTransactionID {
		return domainerr.Validation(op, "a transaction cannot be linked to itself")
	}

	locked, err := lockTransactions(ctx, w, l.Scope, false, l.FirstTransactionID, l.SecondTransactionID)
	if err != nil {
		return classify(op, err)
	}
	first, second := locked[0], locked[1]
	if first.ID != l.FirstTransactionID {
		first, second = second, first
	}

	for _, txn := range []*transaction.Transaction{first, second} {
		if txn.Type.IsTransfer() || txn.IsLinked() {
			return domainerr.Conflict(op, "transaction %s is already part of a transfer", txn.ID)
		}
		if !txn.Type.Valid() {
			return domainerr.Validation(op, "transaction %s has unknown type %q", txn.ID, string(txn.Type))
		}
	}
	if first.AccountID == second.AccountID {
		return domainerr.Validation(op, "transactions are on the same account")
	}
	if first.Type.Direction() == second.Type.Direction() {
		return domainerr.Conflict(op, "transactions move money in the same direction")
	}
	if first.AmountCents != second.AmountCents {
		return domainerr.Validation(op, "amounts differ: %d and %d cents", first.AmountCents, second.AmountCents)
	}

	out, in := first, second
	if out.Type.Direction() == transaction.DirectionInbound {
		out, in = in, out
	}

	// Existence check only; balances are not changed here.
	for _, accountID := range []uuid.UUID{out.AccountID, in.AccountID} {
		if _, err := w.Accounts.FindScoped(ctx, l.Scope, accountID); err != nil {
			return classify(op, err)
		}
	}

	groupID, err := NewID()
	if err != nil {
		return domainerr.System(op, err)
	}

	links := []struct {
		txn    *transaction.Transaction
		t      transaction.Type
		paired uuid.UUID
	}{
		{out, transaction.TypeTransferOut, in.ID},
		{in, transaction.TypeTransferIn, out.ID},
	}
	for _, link := range links {
		err := w.Transactions.LinkAsTransfer(ctx, l.Scope, link.txn.ID, &transaction.TransferLink{
			Type:                 link.t,
			TransferID:           groupID,
			PairedTransactionID:  link.paired,
			SourceAccountID:      out.AccountID,
			DestinationAccountID: in.AccountID,
		})
		if err != nil {
			return classify(op, err)
		}
	}

	err = movement.InsertTransferMovement(ctx, w, &transfer.TransferCreate{
		ID:                groupID,
		Scope:             l.Scope,
		FromAccountID:     out.AccountID,
		ToAccountID:       in.AccountID,
		AmountCents:       out.AmountCents,
		Date:              out.Date,
		Description:       out.Description,
		Status:            transfer.StatusCompleted,
		Notes:             out.Notes,
		FromTransactionID: out.ID,
		ToTransactionID:   in.ID,
	})
	if err != nil {
		return classify(op, err)
	}

	l.Result = TransferPairResult{
		TransferGroupID:   groupID,
		FromTransactionID: out.ID,
		ToTransactionID:   in.ID,
		FromAccountID:     out.AccountID,
		ToAccountID:       in.AccountID,
	}
	return nil
}
