package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	ops    Processor
	reader *storage.Reader
	logger *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(ops Processor, reader *storage.Reader, logger *logrus.Logger) *TransactionService {
	return &TransactionService{ops: ops, reader: reader, logger: logger}
}

// CreateTransaction records an income or expense, posts it to the account
// balance, and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (uuid.UUID, error) {
	const op = "createTransaction"
	sc := scope.New(create.UserID, create.HouseholdID)
	if err := requireScope(op, sc); err != nil {
		return uuid.Nil, finish(ctx, s.logger, op, err)
	}

	var txType transaction.Type
	switch create.Kind {
	case TransactionKindIncome:
		txType = transaction.TypeIncome
	case TransactionKindExpense:
		txType = transaction.TypeExpense
	default:
		return uuid.Nil, finish(ctx, s.logger, op, domainerr.Validation(op, "kind must be income or expense"))
	}

	action := &actions.CreateTransaction{
		Scope:       sc,
		AccountID:   create.AccountID,
		Type:        txType,
		AmountCents: create.AmountCents,
		Date:        create.Date,
		Description: create.Description,
		CategoryID:  create.CategoryID,
		MerchantID:  create.MerchantID,
		Notes:       create.Notes,
		IsPending:   create.IsPending,
	}
	if err := s.ops.Process(ctx, action); err != nil {
		return uuid.Nil, finish(ctx, s.logger, op, err)
	}
	return action.TransactionID, nil
}

// GetTransaction retrieves a transaction by ID within the caller's household.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, householdID, id uuid.UUID) (*Transaction, error) {
	const op = "getTransaction"
	sc := scope.New(userID, householdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}

	row, err := s.reader.Transactions.FindScoped(ctx, sc, id)
	if errors.Is(err, transaction.ErrNotFound) {
		return nil, finish(ctx, s.logger, op, domainerr.NotFound(op, "transaction %s not found", id))
	}
	if err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}

	return &Transaction{
		ID:                           row.ID,
		AccountID:                    row.AccountID,
		Type:                         string(row.Type),
		AmountCents:                  row.AmountCents,
		Date:                         row.Date,
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
	}, nil
}
