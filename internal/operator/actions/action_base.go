package actions

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/movement"
	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

// IAction is one unit of work run by an operator inside a single storage
// transaction. Returning an error rolls the whole transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// NewID generates row and transfer group ids. Replaced in tests.
var NewID = uuid.NewV4

func newIDs(n int) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		id, err := NewID()
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// classify tags err with a domain kind for op. Errors that are already tagged
// pass through.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domainerr.Error
	switch {
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, account.ErrNotFound):
		return domainerr.NotFound(op, "account not found")
	case errors.Is(err, transaction.ErrNotFound):
		return domainerr.NotFound(op, "transaction not found")
	case errors.Is(err, transfer.ErrNotFound):
		return domainerr.NotFound(op, "transfer not found")
	case errors.Is(err, movement.ErrInvalidMovement),
		errors.Is(err, movement.ErrInvalidTransfer),
		errors.Is(err, movement.ErrBalanceOverflow):
		return &domainerr.Error{Kind: domainerr.KindValidation, Op: op, Err: err}
	case storage.IsUniqueViolation(err):
		return &domainerr.Error{Kind: domainerr.KindConflict, Op: op, Message: "duplicate row", Err: err}
	}
	return domainerr.System(op, err)
}

// lockAccounts takes row locks on the given accounts in ascending id order so
// two operations touching the same pair cannot deadlock.
func lockAccounts(ctx context.Context, w *storage.Writer, s scope.Scope, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	sorted := append([]uuid.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	locked := make(map[uuid.UUID]*account.Account, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		acc, err := w.Accounts.FindScopedForUpdate(ctx, s, id)
		if err != nil {
			return nil, err
		}
		locked[id] = acc
	}
	return locked, nil
}

// lockTransactions takes row locks on the given transactions in ascending id
// order, the same order lockAccounts uses. Transactions are always locked
// before accounts. Ids that no longer exist are skipped when skipMissing is
// set.
func lockTransactions(ctx context.Context, w *storage.Writer, s scope.Scope, skipMissing bool, ids ...uuid.UUID) ([]*transaction.Transaction, error) {
	sorted := append([]uuid.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	locked := make([]*transaction.Transaction, 0, len(sorted))
	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}
		txn, err := w.Transactions.FindScopedForUpdate(ctx, s, id)
		if skipMissing && errors.Is(err, transaction.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locked = append(locked, txn)
	}
	return locked, nil
}

// lockTransferLegs returns the transactions making up t, locked in ascending
// id order. Legs are located by group id first and then by the ids on the
// ledger row for rows written before legs carried a group id. Missing legs are
// skipped.
func lockTransferLegs(ctx context.Context, w *storage.Writer, s scope.Scope, t *transfer.Transfer) ([]*transaction.Transaction, error) {
	found, err := w.Transactions.FindByTransferID(ctx, s, t.ID)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, leg := range found {
		ids = append(ids, leg.ID)
	}
	if len(ids) == 0 {
		for _, id := range []uuid.NullUUID{t.FromTransactionID, t.ToTransactionID} {
			if id.Valid {
				ids = append(ids, id.UUID)
			}
		}
	}
	return lockTransactions(ctx, w, s, true, ids...)
}

// TransferRef names a transfer either directly or through one of its legs.
type TransferRef struct {
	TransferID    uuid.NullUUID
	TransactionID uuid.NullUUID
}

func (r TransferRef) valid() bool {
	return r.TransferID.Valid != r.TransactionID.Valid
}

// resolveTransfer loads the ledger row r points at. It takes no locks; callers
// lock the legs with lockTransferLegs.
func resolveTransfer(ctx context.Context, w *storage.Writer, s scope.Scope, r TransferRef, op string) (*transfer.Transfer, error) {
	if !r.valid() {
		return nil, domainerr.Validation(op, "exactly one of transfer id or transaction id is required")
	}

	transferID := r.TransferID.UUID
	if r.TransactionID.Valid {
		anchor, err := w.Transactions.FindScoped(ctx, s, r.TransactionID.UUID)
		if err != nil {
			return nil, err
		}
		if !anchor.TransferID.Valid {
			return nil, domainerr.NotFound(op, "transaction %s is not part of a transfer", anchor.ID)
		}
		transferID = anchor.TransferID.UUID
	}

	return w.Transfers.FindScoped(ctx, s, transferID)
}
