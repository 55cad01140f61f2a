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
)

// CreateTransaction records a regular income or expense and posts it to the
// account balance. Transfer legs are only written by the transfer actions.
type CreateTransaction struct {
	Scope       scope.Scope
	AccountID   uuid.UUID
	Type        transaction.Type
	AmountCents int64
	Date        time.Time
	Description string
	CategoryID  uuid.NullUUID
	MerchantID  uuid.NullUUID
	Notes       string
	IsPending   bool

	TransactionID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	const op = "createTransaction"

	switch t.Type {
	case transaction.TypeIncome, transaction.TypeExpense:
	default:
		return domainerr.Validation(op, "type must be income or expense, got %q", string(t.Type))
	}
	if t.AmountCents <= 0 {
		return domainerr.Validation(op, "amount must be positive")
	}

	id, err := NewID()
	if err != nil {
		return domainerr.System(op, err)
	}

	err = movement.InsertTransactionMovement(ctx, writer, &transaction.TransactionCreate{
		ID:          id,
		Scope:       t.Scope,
		AccountID:   t.AccountID,
		Date:        t.Date,
		AmountCents: t.AmountCents,
		Type:        t.Type,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		MerchantID:  t.MerchantID,
		Notes:       t.Notes,
		IsPending:   t.IsPending,
	})
	if err != nil {
		return classify(op, err)
	}

	t.TransactionID = id
	return nil
}
