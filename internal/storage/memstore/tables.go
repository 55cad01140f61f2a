package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/scope"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

var (
	_ account.IWriter     = (*accounts)(nil)
	_ transaction.IWriter = (*transactions)(nil)
	_ transfer.IWriter    = (*transfers)(nil)
)

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint, Message: "duplicate key value violates unique constraint"}
}

func inScope(s scope.Scope, userID, householdID uuid.UUID) bool {
	return s.UserID == userID && s.HouseholdID == householdID
}

// st is nil for committed-data readers.
type accounts struct {
	store *Store
	st    *state
}

func (a *accounts) data() *state {
	if a.st != nil {
		return a.st
	}
	return a.store.snapshot()
}

func (a *accounts) FindScoped(_ context.Context, s scope.Scope, id uuid.UUID) (*account.Account, error) {
	if err := a.store.failure("accounts.FindScoped"); err != nil {
		return nil, err
	}
	row, ok := a.data().Accounts[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return nil, account.ErrNotFound
	}
	return &row, nil
}

func (a *accounts) FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*account.Account, error) {
	if err := a.store.failure("accounts.FindScopedForUpdate"); err != nil {
		return nil, err
	}
	return a.FindScoped(ctx, s, id)
}

func (a *accounts) Insert(_ context.Context, create *account.AccountCreate) error {
	if err := a.store.failure("accounts.Insert"); err != nil {
		return err
	}
	if _, exists := a.st.Accounts[create.ID]; exists {
		return uniqueViolation("accounts_pkey")
	}
	a.st.Accounts[create.ID] = account.Account{
		ID:           create.ID,
		UserID:       create.Scope.UserID,
		HouseholdID:  create.Scope.HouseholdID,
		EntityID:     create.EntityID,
		Name:         create.Name,
		Type:         create.Type,
		SubType:      create.SubType,
		BalanceCents: null.From(create.BalanceCents),
		CreatedAt:    time.Now().UTC(),
	}
	return nil
}

func (a *accounts) UpdateScopedBalance(_ context.Context, s scope.Scope, id uuid.UUID, balanceCents int64) error {
	if err := a.store.failure("accounts.UpdateScopedBalance"); err != nil {
		return err
	}
	row, ok := a.st.Accounts[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return account.ErrNotFound
	}
	row.BalanceCents = null.From(balanceCents)
	a.st.Accounts[id] = row
	return nil
}

type transactions struct {
	store *Store
	st    *state
}

func (t *transactions) data() *state {
	if t.st != nil {
		return t.st
	}
	return t.store.snapshot()
}

func (t *transactions) FindScoped(_ context.Context, s scope.Scope, id uuid.UUID) (*transaction.Transaction, error) {
	if err := t.store.failure("transactions.FindScoped"); err != nil {
		return nil, err
	}
	row, ok := t.data().Transactions[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return nil, transaction.ErrNotFound
	}
	return &row, nil
}

func (t *transactions) FindScopedForUpdate(ctx context.Context, s scope.Scope, id uuid.UUID) (*transaction.Transaction, error) {
	if err := t.store.failure("transactions.FindScopedForUpdate"); err != nil {
		return nil, err
	}
	return t.FindScoped(ctx, s, id)
}

func (t *transactions) FindByTransferID(_ context.Context, s scope.Scope, transferID uuid.UUID) ([]*transaction.Transaction, error) {
	if err := t.store.failure("transactions.FindByTransferID"); err != nil {
		return nil, err
	}
	var out []*transaction.Transaction
	for _, row := range t.data().Transactions {
		if row.TransferID.Valid && row.TransferID.UUID == transferID && inScope(s, row.UserID, row.HouseholdID) {
			row := row
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type > out[j].Type
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (t *transactions) pairedTaken(pairedID uuid.NullUUID, except uuid.UUID) bool {
	if !pairedID.Valid {
		return false
	}
	for id, row := range t.st.Transactions {
		if id != except && row.PairedTransactionID.Valid && row.PairedTransactionID.UUID == pairedID.UUID {
			return true
		}
	}
	return false
}

func (t *transactions) Insert(_ context.Context, create *transaction.TransactionCreate) error {
	if err := t.store.failure("transactions.Insert"); err != nil {
		return err
	}
	if _, exists := t.st.Transactions[create.ID]; exists {
		return uniqueViolation("transactions_pkey")
	}
	if _, ok := t.st.Accounts[create.AccountID]; !ok {
		return errors.Errorf("transactions.Insert: account %s does not exist", create.AccountID)
	}
	if t.pairedTaken(create.PairedTransactionID, create.ID) {
		return uniqueViolation("transactions_paired_transaction_id_key")
	}

	now := time.Now().UTC()
	t.st.Transactions[create.ID] = transaction.Transaction{
		ID:                           create.ID,
		UserID:                       create.Scope.UserID,
		HouseholdID:                  create.Scope.HouseholdID,
		AccountID:                    create.AccountID,
		Date:                         create.Date,
		AmountCents:                  create.AmountCents,
		Type:                         create.Type,
		Description:                  create.Description,
		CategoryID:                   create.CategoryID,
		MerchantID:                   create.MerchantID,
		Notes:                        create.Notes,
		IsPending:                    create.IsPending,
		TransferID:                   create.TransferID,
		PairedTransactionID:          create.PairedTransactionID,
		TransferSourceAccountID:      create.TransferSourceAccountID,
		TransferDestinationAccountID: create.TransferDestinationAccountID,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}
	return nil
}

func (t *transactions) LinkAsTransfer(_ context.Context, s scope.Scope, id uuid.UUID, link *transaction.TransferLink) error {
	if err := t.store.failure("transactions.LinkAsTransfer"); err != nil {
		return err
	}
	row, ok := t.st.Transactions[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return transaction.ErrNotFound
	}
	paired := uuid.NullUUID{UUID: link.PairedTransactionID, Valid: true}
	if t.pairedTaken(paired, id) {
		return uniqueViolation("transactions_paired_transaction_id_key")
	}

	row.Type = link.Type
	row.CategoryID = uuid.NullUUID{}
	row.MerchantID = uuid.NullUUID{}
	row.TransferID = uuid.NullUUID{UUID: link.TransferID, Valid: true}
	row.PairedTransactionID = paired
	row.TransferSourceAccountID = uuid.NullUUID{UUID: link.SourceAccountID, Valid: true}
	row.TransferDestinationAccountID = uuid.NullUUID{UUID: link.DestinationAccountID, Valid: true}
	row.UpdatedAt = time.Now().UTC()
	t.st.Transactions[id] = row
	return nil
}

func (t *transactions) UpdateMetadata(_ context.Context, s scope.Scope, id uuid.UUID, description, notes omit.Val[string]) error {
	if err := t.store.failure("transactions.UpdateMetadata"); err != nil {
		return err
	}
	row, ok := t.st.Transactions[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return transaction.ErrNotFound
	}
	row.Description = description.GetOr(row.Description)
	row.Notes = notes.GetOr(row.Notes)
	row.UpdatedAt = time.Now().UTC()
	t.st.Transactions[id] = row
	return nil
}

func (t *transactions) Delete(_ context.Context, s scope.Scope, id uuid.UUID) error {
	if err := t.store.failure("transactions.Delete"); err != nil {
		return err
	}
	row, ok := t.st.Transactions[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return transaction.ErrNotFound
	}
	delete(t.st.Transactions, id)
	return nil
}

type transfers struct {
	store *Store
	st    *state
}

func (t *transfers) data() *state {
	if t.st != nil {
		return t.st
	}
	return t.store.snapshot()
}

func (t *transfers) FindScoped(_ context.Context, s scope.Scope, id uuid.UUID) (*transfer.Transfer, error) {
	if err := t.store.failure("transfers.FindScoped"); err != nil {
		return nil, err
	}
	row, ok := t.data().Transfers[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return nil, transfer.ErrNotFound
	}
	return &row, nil
}

func (t *transfers) Insert(_ context.Context, create *transfer.TransferCreate) error {
	if err := t.store.failure("transfers.Insert"); err != nil {
		return err
	}
	if _, exists := t.st.Transfers[create.ID]; exists {
		return uniqueViolation("transfers_pkey")
	}

	now := time.Now().UTC()
	t.st.Transfers[create.ID] = transfer.Transfer{
		ID:                create.ID,
		UserID:            create.Scope.UserID,
		HouseholdID:       create.Scope.HouseholdID,
		FromAccountID:     create.FromAccountID,
		ToAccountID:       create.ToAccountID,
		AmountCents:       create.AmountCents,
		FeesCents:         create.FeesCents,
		Date:              create.Date,
		Description:       create.Description,
		Status:            create.Status,
		Notes:             create.Notes,
		FromTransactionID: uuid.NullUUID{UUID: create.FromTransactionID, Valid: create.FromTransactionID != uuid.Nil},
		ToTransactionID:   uuid.NullUUID{UUID: create.ToTransactionID, Valid: create.ToTransactionID != uuid.Nil},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	return nil
}

func (t *transfers) UpdateMetadata(_ context.Context, s scope.Scope, id uuid.UUID, description, notes omit.Val[string]) error {
	if err := t.store.failure("transfers.UpdateMetadata"); err != nil {
		return err
	}
	row, ok := t.st.Transfers[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return transfer.ErrNotFound
	}
	row.Description = description.GetOr(row.Description)
	row.Notes = notes.GetOr(row.Notes)
	row.UpdatedAt = time.Now().UTC()
	t.st.Transfers[id] = row
	return nil
}

func (t *transfers) Delete(_ context.Context, s scope.Scope, id uuid.UUID) error {
	if err := t.store.failure("transfers.Delete"); err != nil {
		return err
	}
	row, ok := t.st.Transfers[id]
	if !ok || !inScope(s, row.UserID, row.HouseholdID) {
		return transfer.ErrNotFound
	}
	delete(t.st.Transfers, id)
	return nil
}
