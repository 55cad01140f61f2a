package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/analytics"
	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage"
)

// Processor runs an action in its own storage transaction.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Account     *AccountService
	Transfer    *TransferService
}

// NewService wires every service to the same operator and read path.
func NewService(ops Processor, reader *storage.Reader, recorder analytics.PairUsageRecorder, logger *logrus.Logger) *Service {
	return &Service{
		Transaction: NewTransactionService(ops, reader, logger),
		Account:     NewAccountService(ops, reader, logger),
		Transfer:    NewTransferService(ops, reader, recorder, logger),
	}
}
