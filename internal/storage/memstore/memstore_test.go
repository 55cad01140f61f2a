package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

func newScope() scope.Scope {
	return scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
}

func insertAccount(t *testing.T, w *storage.Writer, s scope.Scope, balance int64) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV4())
	require.NoError(t, w.Accounts.Insert(context.Background(), &account.AccountCreate{
		ID:           id,
		Scope:        s,
		Name:         "Checking",
		Type:         account.AccountTypeChecking,
		BalanceCents: balance,
	}))
	return id
}

func TestWrite_CommitPublishes(t *testing.T) {
	store := New()
	s := newScope()
	ctx := context.Background()

	w, err := store.Write(ctx)
	require.NoError(t, err)
	id := insertAccount(t, w, s, 100)

	_, err = store.Read().Accounts.FindScoped(ctx, s, id)
	assert.ErrorIs(t, err, account.ErrNotFound, "uncommitted rows are invisible")

	require.NoError(t, w.Commit(ctx))

	acc, err := store.Read().Accounts.FindScoped(ctx, s, id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.BalanceCents.GetOr(0))
}

func TestWrite_RollbackDiscards(t *testing.T) {
	store := New()
	s := newScope()
	ctx := context.Background()

	w, err := store.Write(ctx)
	require.NoError(t, err)
	id := insertAccount(t, w, s, 100)
	require.NoError(t, w.Rollback(ctx))

	_, ok := store.Account(id)
	assert.False(t, ok)
}

func TestWrite_ScopeMismatch(t *testing.T) {
	store := New()
	s := newScope()
	ctx := context.Background()

	w, err := store.Write(ctx)
	require.NoError(t, err)
	id := insertAccount(t, w, s, 100)

	other := scope.New(s.UserID, uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, w.Accounts.UpdateScopedBalance(ctx, other, id, 5), account.ErrNotFound)
	require.NoError(t, w.Commit(ctx))

	acc, _ := store.Account(id)
	assert.Equal(t, int64(100), acc.BalanceCents.GetOr(0))
}

func TestWrite_SerializesWriters(t *testing.T) {
	store := New()
	ctx := context.Background()

	w, err := store.Write(ctx)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = store.Write(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, w.Rollback(ctx))
	w2, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w2.Rollback(ctx))
}

func TestFailOn_Commit(t *testing.T) {
	store := New()
	s := newScope()
	ctx := context.Background()
	boom := errors.New("disk full")
	store.FailOn("commit", boom)

	w, err := store.Write(ctx)
	require.NoError(t, err)
	id := insertAccount(t, w, s, 1)

	assert.ErrorIs(t, w.Commit(ctx), boom)
	_, ok := store.Account(id)
	assert.False(t, ok)
	assert.ErrorIs(t, w.Commit(ctx), ErrTxDone)
	assert.NoError(t, w.Rollback(ctx))

	store.ClearFailures()
	w, err = store.Write(ctx)
	require.NoError(t, err, "slot released after failed commit")
	require.NoError(t, w.Rollback(ctx))
}
