package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/movement"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

// TransferPairResult identifies the rows making up one transfer.
type TransferPairResult struct {
	TransferGroupID   uuid.UUID
	FromTransactionID uuid.UUID
	ToTransactionID   uuid.UUID
	FromAccountID     uuid.UUID
	ToAccountID       uuid.UUID
}

// CreateTransferPair moves AmountCents from one account to another as a
// transfer_out leg, a transfer_in leg and one ledger row. Fees are recorded
// on the ledger row only and never touch a balance.
type CreateTransferPair struct {
	Scope         scope.Scope
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	AmountCents   int64
	FeesCents     int64
	Date          time.Time
	Description   string
	Notes         string

	Result TransferPairResult
}

func (c *CreateTransferPair) validate(op string) error {
	switch {
	case c.FromAccountID == c.ToAccountID:
		return domainerr.Validation(op, "source and destination account must differ")
	case c.AmountCents <= 0:
		return domainerr.Validation(op, "amount must be positive")
	case c.FeesCents < 0:
		return domainerr.Validation(op, "fees must not be negative")
	}
	return nil
}

func (c *CreateTransferPair) Perform(ctx context.Context, w *storage.Writer) error {
	const op = "createCanonicalTransferPair"

	if err := c.validate(op); err != nil {
		return err
	}
	if _, err := lockAccounts(ctx, w, c.Scope, c.FromAccountID, c.ToAccountID); err != nil {
		return classify(op, err)
	}

	ids, err := newIDs(3)
	if err != nil {
		return domainerr.System(op, err)
	}
	groupID, fromTxID, toTxID := ids[0], ids[1], ids[2]

	leg := func(id, accountID, paired uuid.UUID, t transaction.Type) *transaction.TransactionCreate {
		return &transaction.TransactionCreate{
			ID:                           id,
			Scope:                        c.Scope,
			AccountID:                    accountID,
			Date:                         c.Date,
			AmountCents:                  c.AmountCents,
			Type:                         t,
			Description:                  c.Description,
			Notes:                        c.Notes,
			TransferID:                   uuid.NullUUID{UUID: groupID, Valid: true},
			PairedTransactionID:          uuid.NullUUID{UUID: paired, Valid: true},
			TransferSourceAccountID:      uuid.NullUUID{UUID: c.FromAccountID, Valid: true},
			TransferDestinationAccountID: uuid.NullUUID{UUID: c.ToAccountID, Valid: true},
		}
	}

	if err := movement.InsertTransactionMovement(ctx, w, leg(fromTxID, c.FromAccountID, toTxID, transaction.TypeTransferOut)); err != nil {
		return classify(op, err)
	}
	if err := movement.InsertTransactionMovement(ctx, w, leg(toTxID, c.ToAccountID, fromTxID, transaction.TypeTransferIn)); err != nil {
		return classify(op, err)
	}

	err = movement.InsertTransferMovement(ctx, w, &transfer.TransferCreate{
		ID:                groupID,
		Scope:             c.Scope,
		FromAccountID:     c.FromAccountID,
		ToAccountID:       c.ToAccountID,
		AmountCents:       c.AmountCents,
		FeesCents:         c.FeesCents,
		Date:              c.Date,
		Description:       c.Description,
		Status:            transfer.StatusCompleted,
		Notes:             c.Notes,
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
		FromAccountID:     c.FromAccountID,
		ToAccountID:       c.ToAccountID,
	}
	return nil
}
