package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

type CreateAccount struct {
	Scope                scope.Scope
	EntityID             uuid.NullUUID
	Name                 string
	Type                 account.AccountType
	SubType              string
	StartingBalanceCents int64

	// Set after a successful Perform.
	AccountID uuid.UUID
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	const op = "createAccount"

	if c.Name == "" {
		return domainerr.Validation(op, "name is required")
	}
	if !c.Type.Valid() {
		return domainerr.Validation(op, "unknown account type %d", int8(c.Type))
	}

	id, err := NewID()
	if err != nil {
		return domainerr.System(op, err)
	}

	err = writer.Accounts.Insert(ctx, &account.AccountCreate{
		ID:           id,
		Scope:        c.Scope,
		EntityID:     c.EntityID,
		Name:         c.Name,
		Type:         c.Type,
		SubType:      c.SubType,
		BalanceCents: c.StartingBalanceCents,
	})
	if err != nil {
		return classify(op, err)
	}

	c.AccountID = id
	return nil
}
