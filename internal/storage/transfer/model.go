package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// ErrNotFound is returned when no transfer matches both id and scope.
var ErrNotFound = errors.New("transfer not found")

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending:
		return true
	}
	return false
}

// Transfer is the ledger summary row for one transfer. Its ID is the
// transfer group id carried by both legs.
type Transfer struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	HouseholdID       uuid.UUID
	FromAccountID     uuid.UUID
	ToAccountID       uuid.UUID
	AmountCents       int64
	FeesCents         int64
	Date              time.Time
	Description       string
	Status            Status
	Notes             string
	FromTransactionID uuid.NullUUID
	ToTransactionID   uuid.NullUUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type TransferCreate struct {
	ID                uuid.UUID
	Scope             scope.Scope
	FromAccountID     uuid.UUID
	ToAccountID       uuid.UUID
	AmountCents       int64
	FeesCents         int64
	Date              time.Time
	Description       string
	Status            Status
	Notes             string
	FromTransactionID uuid.UUID
	ToTransactionID   uuid.UUID
}

type IReader interface {
	FindScoped(ctx context.Context, s scope.Scope, id uuid.UUID) (*Transfer, error)
}

// IWriter is the ledger side of a storage transaction.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	Insert(ctx context.Context, create *TransferCreate) error
	UpdateMetadata(ctx context.Context, s scope.Scope, id uuid.UUID, description, notes omit.Val[string]) error
	Delete(ctx context.Context, s scope.Scope, id uuid.UUID) error
}

type transferRow struct {
	ID                uuid.UUID     `db:"id"`
	UserID            uuid.UUID     `db:"user_id"`
	HouseholdID       uuid.UUID     `db:"household_id"`
	FromAccountID     uuid.UUID     `db:"from_account_id"`
	ToAccountID       uuid.UUID     `db:"to_account_id"`
	AmountCents       int64         `db:"amount_cents"`
	FeesCents         int64         `db:"fees_cents"`
	Date              time.Time     `db:"date"`
	Description       string        `db:"description"`
	Status            string        `db:"status"`
	Notes             string        `db:"notes"`
	FromTransactionID uuid.NullUUID `db:"from_transaction_id"`
	ToTransactionID   uuid.NullUUID `db:"to_transaction_id"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

var transferColumns = []any{
	"id", "user_id", "household_id", "from_account_id", "to_account_id", "amount_cents",
	"fees_cents", "date", "description", "status", "notes", "from_transaction_id",
	"to_transaction_id", "created_at", "updated_at",
}

func rowToTransfer(row transferRow) *Transfer {
	return &Transfer{
		ID:                row.ID,
		UserID:            row.UserID,
		HouseholdID:       row.HouseholdID,
		FromAccountID:     row.FromAccountID,
		ToAccountID:       row.ToAccountID,
		AmountCents:       row.AmountCents,
		FeesCents:         row.FeesCents,
		Date:              row.Date,
		Description:       row.Description,
		Status:            Status(row.Status),
		Notes:             row.Notes,
		FromTransactionID: row.FromTransactionID,
		ToTransactionID:   row.ToTransactionID,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
