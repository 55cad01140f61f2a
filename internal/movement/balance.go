// Package movement holds the low-level writers that post money: one
// transaction row plus its balance effect, or one transfer ledger row. Every
// function runs inside the caller's storage.Writer.
package movement

import (
	"context"
	"math"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/scope"
)

var ErrBalanceOverflow = errors.New("movement: balance out of range")

// GetAccountBalanceCents treats a null stored balance as zero.
func GetAccountBalanceCents(a *account.Account) int64 {
	return a.BalanceCents.GetOr(0)
}

type ScopedBalance struct {
	AccountID    uuid.UUID
	Scope        scope.Scope
	BalanceCents int64
}

// UpdateScopedAccountBalance writes an absolute balance within w. It fails
// with account.ErrNotFound rather than touching a row outside the scope.
func UpdateScopedAccountBalance(ctx context.Context, w *storage.Writer, update ScopedBalance) error {
	if update.Scope.IsZero() {
		return errors.New("movement: balance update without scope")
	}
	return w.Accounts.UpdateScopedBalance(ctx, update.Scope, update.AccountID, update.BalanceCents)
}

// postDelta locks the account row, runs write, then stores balance+delta.
// The row lock must be held before write so an insert's FK key-share lock
// never has to be upgraded.
func postDelta(ctx context.Context, w *storage.Writer, s scope.Scope, accountID uuid.UUID, delta int64, write func() error) error {
	acc, err := w.Accounts.FindScopedForUpdate(ctx, s, accountID)
	if err != nil {
		return err
	}

	balance, err := addCents(GetAccountBalanceCents(acc), delta)
	if err != nil {
		return err
	}

	if err := write(); err != nil {
		return err
	}

	return UpdateScopedAccountBalance(ctx, w, ScopedBalance{
		AccountID:    accountID,
		Scope:        s,
		BalanceCents: balance,
	})
}

func addCents(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrBalanceOverflow
	}
	return a + b, nil
}
