package operator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/operator/actions"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/memstore"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

type funcAction func(ctx context.Context, w *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, w *storage.Writer) error {
	return f(ctx, w)
}

func newDelegator(t *testing.T, workers int) (*OperatorDelegator, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	logger, _ := test.NewNullLogger()
	d := NewOperatorDelegator(store, workers, logger)
	d.Start()
	t.Cleanup(d.Stop)
	return d, store
}

func seedAccount(store *memstore.Store, s scope.Scope, balance int64) uuid.UUID {
	id := uuid.Must(uuid.NewV4())
	store.SeedAccount(account.Account{
		ID:           id,
		UserID:       s.UserID,
		HouseholdID:  s.HouseholdID,
		Name:         "Checking",
		BalanceCents: null.From(balance),
	})
	return id
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	d, store := newDelegator(t, 2)
	s := scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))

	action := &actions.CreateAccount{Scope: s, Name: "Savings", Type: account.AccountTypeSavings, StartingBalanceCents: 10}
	require.NoError(t, d.Process(context.Background(), action))

	acc, ok := store.Account(action.AccountID)
	require.True(t, ok)
	assert.Equal(t, int64(10), acc.BalanceCents.GetOr(0))
}

func TestProcess_RollsBackOnError(t *testing.T) {
	d, store := newDelegator(t, 1)
	s := scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	id := seedAccount(store, s, 0)
	boom := errors.New("boom")

	err := d.Process(context.Background(), funcAction(func(ctx context.Context, w *storage.Writer) error {
		assert.NoError(t, w.Accounts.UpdateScopedBalance(ctx, s, id, 500))
		return boom
	}))
	assert.ErrorIs(t, err, boom)

	acc, _ := store.Account(id)
	assert.Equal(t, int64(0), acc.BalanceCents.GetOr(0))
}

func TestProcess_CancelledBeforeCommit(t *testing.T) {
	d, store := newDelegator(t, 1)
	s := scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	id := seedAccount(store, s, 0)

	ctx, cancel := context.WithCancel(context.Background())
	err := d.Process(ctx, funcAction(func(ctx context.Context, w *storage.Writer) error {
		if err := w.Accounts.UpdateScopedBalance(ctx, s, id, 500); err != nil {
			return err
		}
		cancel()
		return nil
	}))
	assert.ErrorIs(t, err, context.Canceled)

	acc, _ := store.Account(id)
	assert.Equal(t, int64(0), acc.BalanceCents.GetOr(0), "cancelled work is not committed")
}

func TestProcess_CommitFailureReported(t *testing.T) {
	d, store := newDelegator(t, 1)
	store.FailOn("commit", errors.New("commit failed"))

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error { return nil }))
	assert.EqualError(t, err, "commit failed")
}

func TestProcess_ConcurrentTransfersDoNotLoseUpdates(t *testing.T) {
	d, store := newDelegator(t, 4)
	s := scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
	a := seedAccount(store, s, 0)
	b := seedAccount(store, s, 0)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := a, b
			if i%2 == 1 {
				from, to = b, a
			}
			assert.NoError(t, d.Process(context.Background(), &actions.CreateTransferPair{
				Scope:         s,
				FromAccountID: from,
				ToAccountID:   to,
				AmountCents:   int64(i + 1),
			}))
		}(i)
	}
	wg.Wait()

	accA, _ := store.Account(a)
	accB, _ := store.Account(b)
	assert.Equal(t, int64(0), accA.BalanceCents.GetOr(0)+accB.BalanceCents.GetOr(0))
	// Even transfers move a->b, odd ones b->a: sum(odd i+1) - sum(even i+1) = 25.
	assert.Equal(t, int64(25), accA.BalanceCents.GetOr(0))
	assert.Equal(t, n, store.TransferCount())
}

func TestStop_DrainsQueue(t *testing.T) {
	store := memstore.New()
	d := NewOperatorDelegator(store, 1, logrus.New())
	d.Start()

	done := make(chan error, 1)
	go func() {
		done <- d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error { return nil }))
	}()
	require.NoError(t, <-done)
	d.Stop()
	d.Stop()
}
