package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// TransactionKind is the direction of a regular, non-transfer transaction.
type TransactionKind string

const (
	TransactionKindIncome  TransactionKind = "income"
	TransactionKindExpense TransactionKind = "expense"
)

// TransactionCreate is the input for CreateTransaction. Amounts are unsigned
// cents; Kind carries the direction.
type TransactionCreate struct {
	UserID      uuid.UUID
	HouseholdID uuid.UUID
	AccountID   uuid.UUID
	Kind        TransactionKind
	AmountCents int64
	Date        time.Time
	Description string
	CategoryID  uuid.NullUUID
	MerchantID  uuid.NullUUID
	Notes       string
	IsPending   bool
}

// Transaction is one stored transaction, including transfer linkage.
type Transaction struct {
	ID                           uuid.UUID
	AccountID                    uuid.UUID
	Type                         string
	AmountCents                  int64
	Date                         time.Time
	Description                  string
	CategoryID                   uuid.NullUUID
	MerchantID                   uuid.NullUUID
	Notes                        string
	IsPending                    bool
	TransferID                   uuid.NullUUID
	PairedTransactionID          uuid.NullUUID
	TransferSourceAccountID      uuid.NullUUID
	TransferDestinationAccountID uuid.NullUUID
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}
