package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/analytics"
	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/operator"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/pgtest"
)

type pgEnv struct {
	store  *storage.Storage
	svc    *Service
	userID uuid.UUID
	house  uuid.UUID
}

func newPgEnv(t *testing.T, workers int) *pgEnv {
	t.Helper()
	store := pgtest.Start(t)
	logger, _ := test.NewNullLogger()

	ops := operator.NewOperatorDelegator(store, workers, logger)
	ops.Start()
	t.Cleanup(ops.Stop)

	return &pgEnv{
		store:  store,
		svc:    NewService(ops, store.Read(), analytics.NoopRecorder{}, logger),
		userID: uuid.Must(uuid.NewV4()),
		house:  uuid.Must(uuid.NewV4()),
	}
}

func (e *pgEnv) account(t *testing.T, balance int64) uuid.UUID {
	t.Helper()
	id, err := e.svc.Account.CreateAccount(context.Background(), AccountCreate{
		UserID:               e.userID,
		HouseholdID:          e.house,
		Name:                 "Account",
		StartingBalanceCents: balance,
	})
	require.NoError(t, err)
	return id
}

func (e *pgEnv) balance(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	acc, err := e.svc.Account.GetAccount(context.Background(), e.userID, e.house, id)
	require.NoError(t, err)
	return acc.BalanceCents.GetOr(0)
}

func TestPostgres_CreateThenDeleteRestoresBalances(t *testing.T) {
	e := newPgEnv(t, 2)
	ctx := context.Background()
	from, to := e.account(t, 10000), e.account(t, 500)

	pair, err := e.svc.Transfer.CreateCanonicalTransferPair(ctx, CreateTransferPairInput{
		UserID:        e.userID,
		HouseholdID:   e.house,
		FromAccountID: from,
		ToAccountID:   to,
		AmountCents:   2500,
		FeesCents:     500,
		Date:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Description:   "Savings",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7500), e.balance(t, from))
	assert.Equal(t, int64(3000), e.balance(t, to))

	change, err := e.svc.Transfer.DeleteCanonicalTransferPairByTransactionID(ctx, DeleteTransferPairInput{
		UserID:        e.userID,
		HouseholdID:   e.house,
		TransactionID: pair.ToTransactionID,
	})
	require.NoError(t, err)
	assert.Equal(t, pair.TransferGroupID, change.TransferGroupID)
	assert.ElementsMatch(t, []uuid.UUID{pair.FromTransactionID, pair.ToTransactionID}, change.TransactionIDs)

	assert.Equal(t, int64(10000), e.balance(t, from))
	assert.Equal(t, int64(500), e.balance(t, to))

	_, err = e.svc.Transfer.GetTransfer(ctx, e.userID, e.house, pair.TransferGroupID)
	assert.True(t, domainerr.Is(err, domainerr.KindNotFound))
}

func TestPostgres_ConcurrentOpposingTransfersConserve(t *testing.T) {
	e := newPgEnv(t, 8)
	ctx := context.Background()
	a, b := e.account(t, 100000), e.account(t, 100000)

	const rounds = 40
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.svc.Transfer.CreateCanonicalTransferPair(ctx, CreateTransferPairInput{
				UserID:        e.userID,
				HouseholdID:   e.house,
				FromAccountID: from,
				ToAccountID:   to,
				AmountCents:   100 + int64(i),
				Date:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(200000), e.balance(t, a)+e.balance(t, b))
	// Even rounds send 100+i from a, odd rounds send 100+i back.
	var net int64
	for i := 0; i < rounds; i++ {
		if i%2 == 0 {
			net -= 100 + int64(i)
		} else {
			net += 100 + int64(i)
		}
	}
	assert.Equal(t, 100000+net, e.balance(t, a))
}

func TestPostgres_LinkKeepsBalances(t *testing.T) {
	e := newPgEnv(t, 2)
	ctx := context.Background()
	checking, card := e.account(t, 0), e.account(t, 0)
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	create := func(accountID uuid.UUID, kind TransactionKind) uuid.UUID {
		id, err := e.svc.Transaction.CreateTransaction(ctx, TransactionCreate{
			UserID:      e.userID,
			HouseholdID: e.house,
			AccountID:   accountID,
			Kind:        kind,
			AmountCents: 8000,
			Date:        date,
			Description: "Card payment",
		})
		require.NoError(t, err)
		return id
	}
	expense := create(checking, TransactionKindExpense)
	income := create(card, TransactionKindIncome)

	pair, err := e.svc.Transfer.LinkExistingTransactionsAsCanonicalTransfer(ctx, LinkTransactionsInput{
		UserID:              e.userID,
		HouseholdID:         e.house,
		FirstTransactionID:  expense,
		SecondTransactionID: income,
	})
	require.NoError(t, err)
	assert.Equal(t, expense, pair.FromTransactionID)
	assert.Equal(t, int64(-8000), e.balance(t, checking))
	assert.Equal(t, int64(8000), e.balance(t, card))

	leg, err := e.svc.Transaction.GetTransaction(ctx, e.userID, e.house, income)
	require.NoError(t, err)
	assert.Equal(t, "transfer_in", leg.Type)
	assert.Equal(t, uuid.NullUUID{UUID: expense, Valid: true}, leg.PairedTransactionID)
}
