package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

// CreateTransferPairInput moves AmountCents between two accounts of one
// household. FeesCents is recorded on the ledger row only.
type CreateTransferPairInput struct {
	UserID        uuid.UUID
	HouseholdID   uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	AmountCents   int64
	FeesCents     int64
	Date          time.Time
	Description   string
	Notes         string
}

type LinkTransactionsInput struct {
	UserID              uuid.UUID
	HouseholdID         uuid.UUID
	FirstTransactionID  uuid.UUID
	SecondTransactionID uuid.UUID
}

type ConvertToTransferInput struct {
	UserID               uuid.UUID
	HouseholdID          uuid.UUID
	TransactionID        uuid.UUID
	CounterpartAccountID uuid.UUID
}

// UpdateTransferPairInput changes only the fields that are set.
type UpdateTransferPairInput struct {
	UserID        uuid.UUID
	HouseholdID   uuid.UUID
	TransactionID uuid.UUID
	Description   omit.Val[string]
	Notes         omit.Val[string]
}

type DeleteTransferPairInput struct {
	UserID        uuid.UUID
	HouseholdID   uuid.UUID
	TransactionID uuid.UUID
}

type DeleteTransferInput struct {
	UserID      uuid.UUID
	HouseholdID uuid.UUID
	TransferID  uuid.UUID
}

// TransferPair identifies the rows written for one transfer.
type TransferPair struct {
	TransferGroupID   uuid.UUID
	FromTransactionID uuid.UUID
	ToTransactionID   uuid.UUID
}

// TransferChange reports which rows an update or delete touched.
type TransferChange struct {
	TransferGroupID uuid.UUID
	TransactionIDs  []uuid.UUID
}

// Transfer is the ledger view of one transfer.
type Transfer struct {
	ID                uuid.UUID
	FromAccountID     uuid.UUID
	ToAccountID       uuid.UUID
	AmountCents       int64
	FeesCents         int64
	Date              time.Time
	Description       string
	Status            string
	Notes             string
	FromTransactionID uuid.NullUUID
	ToTransactionID   uuid.NullUUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
