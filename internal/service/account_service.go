package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

// AccountService handles account business logic.
type AccountService struct {
	ops    Processor
	reader *storage.Reader
	logger *logrus.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(ops Processor, reader *storage.Reader, logger *logrus.Logger) *AccountService {
	return &AccountService{ops: ops, reader: reader, logger: logger}
}

// CreateAccount creates a new account and returns its ID.
func (s *AccountService) CreateAccount(ctx context.Context, create AccountCreate) (uuid.UUID, error) {
	const op = "createAccount"
	sc := scope.New(create.UserID, create.HouseholdID)
	if err := requireScope(op, sc); err != nil {
		return uuid.Nil, finish(ctx, s.logger, op, err)
	}

	action := &actions.CreateAccount{
		Scope:                sc,
		EntityID:             create.EntityID,
		Name:                 create.Name,
		Type:                 accountTypeToStorage(create.Type),
		SubType:              create.SubType,
		StartingBalanceCents: create.StartingBalanceCents,
	}
	if err := s.ops.Process(ctx, action); err != nil {
		return uuid.Nil, finish(ctx, s.logger, op, err)
	}
	return action.AccountID, nil
}

// GetAccount retrieves an account by ID within the caller's household.
func (s *AccountService) GetAccount(ctx context.Context, userID, householdID, id uuid.UUID) (*Account, error) {
	const op = "getAccount"
	sc := scope.New(userID, householdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}

	row, err := s.reader.Accounts.FindScoped(ctx, sc, id)
	if errors.Is(err, account.ErrNotFound) {
		return nil, finish(ctx, s.logger, op, domainerr.NotFound(op, "account %s not found", id))
	}
	if err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}
	return accountFromStorage(row), nil
}
