package service

import (
	"context"
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/analytics"
	"github.com/carson-networks/money-movement/internal/operator"
	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/memstore"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordPairUsage(ctx context.Context, usage analytics.PairUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type env struct {
	store    *memstore.Store
	svc      *Service
	recorder *mockRecorder
	logs     *test.Hook
	userID   uuid.UUID
	house    uuid.UUID
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store := memstore.New()
	ops := operator.NewOperatorDelegator(store, 2, logger)
	ops.Start()
	t.Cleanup(ops.Stop)

	recorder := &mockRecorder{}
	svc := NewService(ops, store.Read(), recorder, logger)
	t.Cleanup(svc.Transfer.Wait)
	return &env{
		store:    store,
		svc:      svc,
		recorder: recorder,
		logs:     hook,
		userID:   uuid.Must(uuid.NewV4()),
		house:    uuid.Must(uuid.NewV4()),
	}
}

func (e *env) account(t *testing.T, balance int64) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV4())
	e.store.SeedAccount(account.Account{
		ID:           id,
		UserID:       e.userID,
		HouseholdID:  e.house,
		Name:         "Account",
		BalanceCents: null.From(balance),
	})
	return id
}

func (e *env) balance(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	acc, ok := e.store.Account(id)
	require.True(t, ok)
	return acc.BalanceCents.GetOr(0)
}
