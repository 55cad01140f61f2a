package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/pgtest"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

func newScope() scope.Scope {
	return scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()))
}

func insertAccount(t *testing.T, ctx context.Context, w *storage.Writer, s scope.Scope, balance int64) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV4())
	require.NoError(t, w.Accounts.Insert(ctx, &account.AccountCreate{
		ID:           id,
		Scope:        s,
		Name:         "Checking",
		Type:         account.AccountTypeChecking,
		BalanceCents: balance,
	}))
	return id
}

func TestPostgres_TransferRowsRoundTrip(t *testing.T) {
	store := pgtest.Start(t)
	ctx := context.Background()
	s := newScope()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	w, err := store.Write(ctx)
	require.NoError(t, err)

	from := insertAccount(t, ctx, w, s, 10000)
	to := insertAccount(t, ctx, w, s, 2500)
	transferID := uuid.Must(uuid.NewV4())
	outID, inID := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	leg := func(id, accountID, paired uuid.UUID, typ transaction.Type) *transaction.TransactionCreate {
		return &transaction.TransactionCreate{
			ID:                           id,
			Scope:                        s,
			AccountID:                    accountID,
			Date:                         date,
			AmountCents:                  2500,
			Type:                         typ,
			Description:                  "Savings",
			TransferID:                   uuid.NullUUID{UUID: transferID, Valid: true},
			PairedTransactionID:          uuid.NullUUID{UUID: paired, Valid: true},
			TransferSourceAccountID:      uuid.NullUUID{UUID: from, Valid: true},
			TransferDestinationAccountID: uuid.NullUUID{UUID: to, Valid: true},
		}
	}
	require.NoError(t, w.Transactions.Insert(ctx, leg(outID, from, inID, transaction.TypeTransferOut)))
	require.NoError(t, w.Transactions.Insert(ctx, leg(inID, to, outID, transaction.TypeTransferIn)))
	require.NoError(t, w.Transfers.Insert(ctx, &transfer.TransferCreate{
		ID:                transferID,
		Scope:             s,
		FromAccountID:     from,
		ToAccountID:       to,
		AmountCents:       2500,
		FeesCents:         500,
		Date:              date,
		Description:       "Savings",
		Status:            transfer.StatusCompleted,
		FromTransactionID: outID,
		ToTransactionID:   inID,
	}))
	require.NoError(t, w.Accounts.UpdateScopedBalance(ctx, s, from, 7500))
	require.NoError(t, w.Commit(ctx))

	reader := store.Read()

	legs, err := reader.Transactions.FindByTransferID(ctx, s, transferID)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, outID, legs[0].ID)
	assert.Equal(t, inID, legs[1].ID)
	assert.True(t, legs[0].Date.Equal(date))

	ledger, err := reader.Transfers.FindScoped(ctx, s, transferID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), ledger.FeesCents)
	assert.Equal(t, uuid.NullUUID{UUID: outID, Valid: true}, ledger.FromTransactionID)

	acc, err := reader.Accounts.FindScoped(ctx, s, from)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), acc.BalanceCents.GetOr(0))

	_, err = reader.Accounts.FindScoped(ctx, newScope(), from)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestPostgres_RollbackDiscards(t *testing.T) {
	store := pgtest.Start(t)
	ctx := context.Background()
	s := newScope()

	w, err := store.Write(ctx)
	require.NoError(t, err)
	id := insertAccount(t, ctx, w, s, 100)
	require.NoError(t, w.Rollback(ctx))

	_, err = store.Read().Accounts.FindScoped(ctx, s, id)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestPostgres_DuplicateIDIsUniqueViolation(t *testing.T) {
	store := pgtest.Start(t)
	ctx := context.Background()
	s := newScope()

	w, err := store.Write(ctx)
	require.NoError(t, err)
	id := insertAccount(t, ctx, w, s, 0)
	require.NoError(t, w.Commit(ctx))

	w, err = store.Write(ctx)
	require.NoError(t, err)
	defer func() { _ = w.Rollback(ctx) }()

	err = w.Accounts.Insert(ctx, &account.AccountCreate{ID: id, Scope: s, Name: "Again"})
	require.Error(t, err)
	assert.True(t, storage.IsUniqueViolation(err))
}

func TestPostgres_Ping(t *testing.T) {
	store := pgtest.Start(t)
	assert.NoError(t, store.Ping(context.Background()))
}
