package service

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/money-movement/internal/analytics"
	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

const defaultRecordTimeout = 5 * time.Second

// TransferService is the entry point for every money movement between two
// accounts. Each call is one atomic unit: it either commits fully or leaves
// nothing behind.
type TransferService struct {
	ops      Processor
	reader   *storage.Reader
	recorder analytics.PairUsageRecorder
	logger   *logrus.Logger
	now      func() time.Time

	recordTimeout time.Duration
	recording     sync.WaitGroup
}

func NewTransferService(ops Processor, reader *storage.Reader, recorder analytics.PairUsageRecorder, logger *logrus.Logger) *TransferService {
	if recorder == nil {
		recorder = analytics.NoopRecorder{}
	}
	return &TransferService{
		ops:      ops,
		reader:   reader,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,

		recordTimeout: defaultRecordTimeout,
	}
}

// Wait blocks until every pair usage write started so far has finished.
func (s *TransferService) Wait() {
	s.recording.Wait()
}

func (s *TransferService) CreateCanonicalTransferPair(ctx context.Context, in CreateTransferPairInput) (*TransferPair, error) {
	const op = "createCanonicalTransferPair"
	sc := scope.New(in.UserID, in.HouseholdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}
	if in.FromAccountID == uuid.Nil || in.ToAccountID == uuid.Nil {
		return nil, finish(ctx, s.logger, op, domainerr.Validation(op, "both accounts are required"))
	}

	action := &actions.CreateTransferPair{
		Scope:         sc,
		FromAccountID: in.FromAccountID,
		ToAccountID:   in.ToAccountID,
		AmountCents:   in.AmountCents,
		FeesCents:     in.FeesCents,
		Date:          in.Date,
		Description:   in.Description,
		Notes:         in.Notes,
	}
	if err := s.process(ctx, op, action); err != nil {
		return nil, err
	}

	s.recordPair(ctx, sc, action.Result, analytics.SourceCreate)
	return pairFromResult(action.Result), nil
}

func (s *TransferService) LinkExistingTransactionsAsCanonicalTransfer(ctx context.Context, in LinkTransactionsInput) (*TransferPair, error) {
	const op = "linkExistingTransactionsAsCanonicalTransfer"
	sc := scope.New(in.UserID, in.HouseholdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}
	if in.FirstTransactionID == uuid.Nil || in.SecondTransactionID == uuid.Nil {
		return nil, finish(ctx, s.logger, op, domainerr.Validation(op, "both transactions are required"))
	}

	action := &actions.LinkTransferPair{
		Scope:               sc,
		FirstTransactionID:  in.FirstTransactionID,
		SecondTransactionID: in.SecondTransactionID,
	}
	if err := s.process(ctx, op, action); err != nil {
		return nil, err
	}

	s.recordPair(ctx, sc, action.Result, analytics.SourceLink)
	return pairFromResult(action.Result), nil
}

func (s *TransferService) ConvertTransactionToCanonicalTransfer(ctx context.Context, in ConvertToTransferInput) (*TransferPair, error) {
	const op = "convertTransactionToCanonicalTransfer"
	sc := scope.New(in.UserID, in.HouseholdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}
	if in.TransactionID == uuid.Nil || in.CounterpartAccountID == uuid.Nil {
		return nil, finish(ctx, s.logger, op, domainerr.Validation(op, "transaction and counterpart account are required"))
	}

	action := &actions.ConvertToTransfer{
		Scope:                sc,
		TransactionID:        in.TransactionID,
		CounterpartAccountID: in.CounterpartAccountID,
	}
	if err := s.process(ctx, op, action); err != nil {
		return nil, err
	}

	s.recordPair(ctx, sc, action.Result, analytics.SourceConvert)
	return pairFromResult(action.Result), nil
}

func (s *TransferService) UpdateCanonicalTransferPairByTransactionID(ctx context.Context, in UpdateTransferPairInput) (*TransferChange, error) {
	const op = "updateCanonicalTransferPairByTransactionId"
	sc := scope.New(in.UserID, in.HouseholdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}
	if in.TransactionID == uuid.Nil {
		return nil, finish(ctx, s.logger, op, domainerr.Validation(op, "transaction is required"))
	}

	action := &actions.UpdateTransferPair{
		Scope:       sc,
		Ref:         actions.TransferRef{TransactionID: uuid.NullUUID{UUID: in.TransactionID, Valid: true}},
		Description: in.Description,
		Notes:       in.Notes,
	}
	if err := s.process(ctx, op, action); err != nil {
		return nil, err
	}

	return &TransferChange{
		TransferGroupID: action.TransferGroupID,
		TransactionIDs:  action.UpdatedTransactionIDs,
	}, nil
}

func (s *TransferService) DeleteCanonicalTransferPairByTransactionID(ctx context.Context, in DeleteTransferPairInput) (*TransferChange, error) {
	const op = "deleteCanonicalTransferPairByTransactionId"
	if in.TransactionID == uuid.Nil {
		return nil, finish(ctx, s.logger, op, domainerr.Validation(op, "transaction is required"))
	}
	ref := actions.TransferRef{TransactionID: uuid.NullUUID{UUID: in.TransactionID, Valid: true}}
	return s.delete(ctx, op, scope.New(in.UserID, in.HouseholdID), ref)
}

func (s *TransferService) DeleteCanonicalTransferPairByTransferID(ctx context.Context, in DeleteTransferInput) (*TransferChange, error) {
	const op = "deleteCanonicalTransferPairByTransferId"
	if in.TransferID == uuid.Nil {
		return nil, finish(ctx, s.logger, op, domainerr.Validation(op, "transfer is required"))
	}
	ref := actions.TransferRef{TransferID: uuid.NullUUID{UUID: in.TransferID, Valid: true}}
	return s.delete(ctx, op, scope.New(in.UserID, in.HouseholdID), ref)
}

func (s *TransferService) delete(ctx context.Context, op string, sc scope.Scope, ref actions.TransferRef) (*TransferChange, error) {
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}

	action := &actions.DeleteTransferPair{Scope: sc, Ref: ref}
	if err := s.process(ctx, op, action); err != nil {
		return nil, err
	}

	return &TransferChange{
		TransferGroupID: action.TransferGroupID,
		TransactionIDs:  action.DeletedTransactionIDs,
	}, nil
}

// GetTransfer reads the ledger row for id within the caller's household.
func (s *TransferService) GetTransfer(ctx context.Context, userID, householdID, id uuid.UUID) (*Transfer, error) {
	const op = "getTransfer"
	sc := scope.New(userID, householdID)
	if err := requireScope(op, sc); err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}

	row, err := s.reader.Transfers.FindScoped(ctx, sc, id)
	if errors.Is(err, transfer.ErrNotFound) {
		return nil, finish(ctx, s.logger, op, domainerr.NotFound(op, "transfer %s not found", id))
	}
	if err != nil {
		return nil, finish(ctx, s.logger, op, err)
	}

	return &Transfer{
		ID:                row.ID,
		FromAccountID:     row.FromAccountID,
		ToAccountID:       row.ToAccountID,
		AmountCents:       row.AmountCents,
		FeesCents:         row.FeesCents,
		Date:              row.Date,
		Description:       row.Description,
		Status:            string(row.Status),
		Notes:             row.Notes,
		FromTransactionID: row.FromTransactionID,
		ToTransactionID:   row.ToTransactionID,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}

func (s *TransferService) process(ctx context.Context, op string, action actions.IAction) error {
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("operatorMs")()
	}
	return finish(ctx, s.logger, op, s.ops.Process(ctx, action))
}

// recordPair runs after commit on its own goroutine. It is detached from the
// request context and bounded by recordTimeout. Failures are logged and dropped.
func (s *TransferService) recordPair(ctx context.Context, sc scope.Scope, r actions.TransferPairResult, source analytics.Source) {
	usage := analytics.PairUsage{
		HouseholdID:   sc.HouseholdID,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Source:        source,
		At:            s.now(),
	}
	detached := context.WithoutCancel(ctx)

	s.recording.Add(1)
	go func() {
		defer s.recording.Done()
		recordCtx, cancel := context.WithTimeout(detached, s.recordTimeout)
		defer cancel()

		if err := s.recorder.RecordPairUsage(recordCtx, usage); err != nil {
			s.logger.WithError(err).WithField("source", source).Warn("TransferService.recordPair")
		}
	}()
}

func pairFromResult(r actions.TransferPairResult) *TransferPair {
	return &TransferPair{
		TransferGroupID:   r.TransferGroupID,
		FromTransactionID: r.FromTransactionID,
		ToTransactionID:   r.ToTransactionID,
	}
}
