package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// ErrNotFound is returned when no account matches both id and scope.
var ErrNotFound = errors.New("account not found")

// Account represents an account record.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	HouseholdID  uuid.UUID
	EntityID     uuid.NullUUID
	Name         string
	Type         AccountType
	SubType      string
	BalanceCents null.Val[int64]
	CreatedAt    time.Time
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	ID           uuid.UUID
	Scope        scope.Scope
	EntityID     uuid.NullUUID
	Name         string
	Type         AccountType
	SubType      string
	BalanceCents int64
}

// IReader reads accounts constrained by scope.
type IReader interface {
	FindScoped(ctx context.Context, s scope.Scope, id uuid.UUID) (*Account, error)
}

// IWriter is the account side of a storage transaction.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) error
	UpdateScopedBalance(ctx context.Context, s scope.Scope, id uuid.UUID, balanceCents int64) error
}

type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCredit
	AccountTypeLineOfCredit
	AccountTypeCash
	AccountTypeInvestment
)

func (t AccountType) Valid() bool {
	return t >= AccountTypeChecking && t <= AccountTypeInvestment
}

func (t AccountType) String() string {
	switch t {
	case AccountTypeChecking:
		return "checking"
	case AccountTypeSavings:
		return "savings"
	case AccountTypeCredit:
		return "credit"
	case AccountTypeLineOfCredit:
		return "line_of_credit"
	case AccountTypeCash:
		return "cash"
	case AccountTypeInvestment:
		return "investment"
	}
	return fmt.Sprintf("account_type(%d)", int8(t))
}

// accountRow mirrors the accounts table for scanning.
type accountRow struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	HouseholdID  uuid.UUID       `db:"household_id"`
	EntityID     uuid.NullUUID   `db:"entity_id"`
	Name         string          `db:"name"`
	Type         int16           `db:"type"`
	SubType      string          `db:"sub_type"`
	BalanceCents null.Val[int64] `db:"balance_cents"`
	CreatedAt    time.Time       `db:"created_at"`
}

var accountColumns = []any{
	"id", "user_id", "household_id", "entity_id", "name",
	"type", "sub_type", "balance_cents", "created_at",
}

func rowToAccount(row accountRow) *Account {
	return &Account{
		ID:           row.ID,
		UserID:       row.UserID,
		HouseholdID:  row.HouseholdID,
		EntityID:     row.EntityID,
		Name:         row.Name,
		Type:         AccountType(row.Type),
		SubType:      row.SubType,
		BalanceCents: row.BalanceCents,
		CreatedAt:    row.CreatedAt,
	}
}
