package service

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/storage/account"
)

// AccountType represents an account type in the service layer.
type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCredit
	AccountTypeLineOfCredit
	AccountTypeCash
	AccountTypeInvestment
)

// Account represents an account in the service layer.
type Account struct {
	ID           uuid.UUID
	EntityID     uuid.NullUUID
	Name         string
	Type         AccountType
	SubType      string
	BalanceCents null.Val[int64]
	CreatedAt    time.Time
}

// AccountCreate is the input for CreateAccount.
type AccountCreate struct {
	UserID               uuid.UUID
	HouseholdID          uuid.UUID
	EntityID             uuid.NullUUID
	Name                 string
	Type                 AccountType
	SubType              string
	StartingBalanceCents int64
}

func accountTypeToStorage(t AccountType) account.AccountType {
	return account.AccountType(t)
}

func accountTypeFromStorage(t account.AccountType) AccountType {
	return AccountType(t)
}

func accountFromStorage(row *account.Account) *Account {
	return &Account{
		ID:           row.ID,
		EntityID:     row.EntityID,
		Name:         row.Name,
		Type:         accountTypeFromStorage(row.Type),
		SubType:      row.SubType,
		BalanceCents: row.BalanceCents,
		CreatedAt:    row.CreatedAt,
	}
}
