package actions

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/memstore"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
)

var testDate = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

type harness struct {
	store *memstore.Store
	scope scope.Scope
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{
		store: memstore.New(),
		scope: scope.New(uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())),
	}
}

func (h *harness) account(t *testing.T, balance int64) uuid.UUID {
	t.Helper()
	return h.accountWith(t, null.From(balance))
}

func (h *harness) accountWith(t *testing.T, balance null.Val[int64]) uuid.UUID {
	t.Helper()
	id := uuid.Must(uuid.NewV4())
	h.store.SeedAccount(account.Account{
		ID:           id,
		UserID:       h.scope.UserID,
		HouseholdID:  h.scope.HouseholdID,
		Name:         "Account",
		Type:         account.AccountTypeChecking,
		BalanceCents: balance,
	})
	return id
}

// post records a regular income or expense through the action so the
// balance reflects it.
func (h *harness) post(t *testing.T, accountID uuid.UUID, txType transaction.Type, amount int64) uuid.UUID {
	t.Helper()
	action := &CreateTransaction{
		Scope:       h.scope,
		AccountID:   accountID,
		Type:        txType,
		AmountCents: amount,
		Date:        testDate,
		Description: "Posted",
		CategoryID:  uuid.NullUUID{UUID: uuid.Must(uuid.NewV4()), Valid: true},
	}
	require.NoError(t, h.run(action))
	return action.TransactionID
}

// run mirrors the operator: one transaction per action, rolled back on error.
func (h *harness) run(action IAction) error {
	ctx := context.Background()
	w, err := h.store.Write(ctx)
	if err != nil {
		return err
	}
	if err := action.Perform(ctx, w); err != nil {
		_ = w.Rollback(ctx)
		return err
	}
	return w.Commit(ctx)
}

// lockLog records the order in which transaction rows are locked.
type lockLog struct {
	transaction.IWriter
	locked []uuid.UUID
}

func (l *lockLog) FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*transaction.Transaction, error) {
	l.locked = append(l.locked, id)
	return l.IWriter.FindScopedForUpdate(ctx, s, id)
}

// runLoggingLocks is run with transaction row locks recorded.
func (h *harness) runLoggingLocks(action IAction) ([]uuid.UUID, error) {
	ctx := context.Background()
	w, err := h.store.Write(ctx)
	if err != nil {
		return nil, err
	}
	log := &lockLog{IWriter: w.Transactions}
	w.Transactions = log
	if err := action.Perform(ctx, w); err != nil {
		_ = w.Rollback(ctx)
		return log.locked, err
	}
	return log.locked, w.Commit(ctx)
}

func ascending(ids ...uuid.UUID) []uuid.UUID {
	sorted := append([]uuid.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return sorted
}

func (h *harness) balance(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	acc, ok := h.store.Account(id)
	require.True(t, ok, "account %s", id)
	return acc.BalanceCents.GetOr(0)
}

func (h *harness) txn(t *testing.T, id uuid.UUID) transaction.Transaction {
	t.Helper()
	txn, ok := h.store.Transaction(id)
	require.True(t, ok, "transaction %s", id)
	return txn
}

func (h *harness) createPair(t *testing.T, from, to uuid.UUID, amount, fees int64) TransferPairResult {
	t.Helper()
	action := &CreateTransferPair{
		Scope:         h.scope,
		FromAccountID: from,
		ToAccountID:   to,
		AmountCents:   amount,
		FeesCents:     fees,
		Date:          testDate,
		Description:   "Move to savings",
		Notes:         "monthly",
	}
	require.NoError(t, h.run(action))
	return action.Result
}

func stubIDs(t *testing.T, ids ...uuid.UUID) {
	t.Helper()
	orig := NewID
	t.Cleanup(func() { NewID = orig })
	next := 0
	NewID = func() (uuid.UUID, error) {
		if next >= len(ids) {
			return orig()
		}
		id := ids[next]
		next++
		return id, nil
	}
}
