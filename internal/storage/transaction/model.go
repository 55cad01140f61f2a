package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// ErrNotFound is returned when no transaction matches both id and scope.
var ErrNotFound = errors.New("transaction not found")

// Transaction represents a transaction record. AmountCents is always the
// unsigned magnitude; Type carries the direction.
type Transaction struct {
	ID                           uuid.UUID
	UserID                       uuid.UUID
	HouseholdID                  uuid.UUID
	AccountID                    uuid.UUID
	Date                         time.Time
	AmountCents                  int64
	Type                         Type
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

// IsLinked reports whether any transfer linkage is present.
func (t *Transaction) IsLinked() bool {
	return t.TransferID.Valid || t.PairedTransactionID.Valid
}

// TransactionCreate is the input for inserting a transaction row.
type TransactionCreate struct {
	ID                           uuid.UUID
	Scope                        scope.Scope
	AccountID                    uuid.UUID
	Date                         time.Time
	AmountCents                  int64
	Type                         Type
	Description                  string
	CategoryID                   uuid.NullUUID
	MerchantID                   uuid.NullUUID
	Notes                        string
	IsPending                    bool
	TransferID                   uuid.NullUUID
	PairedTransactionID          uuid.NullUUID
	TransferSourceAccountID      uuid.NullUUID
	TransferDestinationAccountID uuid.NullUUID
}

// TransferLink re-types an existing row as one leg of a transfer.
type TransferLink struct {
	Type                 Type
	TransferID           uuid.UUID
	PairedTransactionID  uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
}

// IReader reads transactions constrained by scope.
type IReader interface {
	FindScoped(ctx context.Context, s scope.Scope, id uuid.UUID) (*Transaction, error)
	FindByTransferID(ctx context.Context, s scope.Scope, transferID uuid.UUID) ([]*Transaction, error)
}

// IWriter is the transaction side of a storage transaction.
//
//go:generate mockery --name IWriter --output mock_IWriter.go
type IWriter interface {
	IReader
	FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) error
	LinkAsTransfer(ctx context.Context, s scope.Scope, id uuid.UUID, link *TransferLink) error
	UpdateMetadata(ctx context.Context, s scope.Scope, id uuid.UUID, description, notes omit.Val[string]) error
	Delete(ctx context.Context, s scope.Scope, id uuid.UUID) error
}

type transactionRow struct {
	ID                           uuid.UUID     `db:"id"`
	UserID                       uuid.UUID     `db:"user_id"`
	HouseholdID                  uuid.UUID     `db:"household_id"`
	AccountID                    uuid.UUID     `db:"account_id"`
	Date                         time.Time     `db:"date"`
	AmountCents                  int64         `db:"amount_cents"`
	Type                         string        `db:"type"`
	Description                  string        `db:"description"`
	CategoryID                   uuid.NullUUID `db:"category_id"`
	MerchantID                   uuid.NullUUID `db:"merchant_id"`
	Notes                        string        `db:"notes"`
	IsPending                    bool          `db:"is_pending"`
	TransferID                   uuid.NullUUID `db:"transfer_id"`
	PairedTransactionID          uuid.NullUUID `db:"paired_transaction_id"`
	TransferSourceAccountID      uuid.NullUUID `db:"transfer_source_account_id"`
	TransferDestinationAccountID uuid.NullUUID `db:"transfer_destination_account_id"`
	CreatedAt                    time.Time     `db:"created_at"`
	UpdatedAt                    time.Time     `db:"updated_at"`
}

var transactionColumns = []any{
	"id", "user_id", "household_id", "account_id", "date", "amount_cents", "type",
	"description", "category_id", "merchant_id", "notes", "is_pending", "transfer_id",
	"paired_transaction_id", "transfer_source_account_id", "transfer_destination_account_id",
	"created_at", "updated_at",
}

func rowToTransaction(row transactionRow) *Transaction {
	return &Transaction{
		ID:                           row.ID,
		UserID:                       row.UserID,
		HouseholdID:                  row.HouseholdID,
		AccountID:                    row.AccountID,
		Date:                         row.Date,
		AmountCents:                  row.AmountCents,
		Type:                         Type(row.Type),
		Description:                  row.Description,
		CategoryID:                   row.CategoryID,
		MerchantID:                   row.MerchantID,
		Notes:                        row.Notes,
		IsPending:                    row.IsPending,
		TransferID:                   row.TransferID,
		PairedTransactionID:          row.PairedTransactionID,
		TransferSourceAccountID:      row.TransferSourceAccountID,
		TransferDestinationAccountID: row.TransferDestinationAccountID,
		CreatedAt:                    row.CreatedAt,
		UpdatedAt:                    row.UpdatedAt,
	}
}
