// Package memstore is an in-memory storage backend with the same transaction
// semantics as Postgres: writes are invisible until Commit, and Rollback
// discards them. Write transactions are serialized.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/storage"
	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

// ErrTxDone is returned by Commit after the transaction already ended.
var ErrTxDone = errors.New("memstore: transaction already committed or rolled back")

type state struct {
	Accounts     map[uuid.UUID]account.Account
	Transactions map[uuid.UUID]transaction.Transaction
	Transfers    map[uuid.UUID]transfer.Transfer
}

func newState() *state {
	return &state{
		Accounts:     make(map[uuid.UUID]account.Account),
		Transactions: make(map[uuid.UUID]transaction.Transaction),
		Transfers:    make(map[uuid.UUID]transfer.Transfer),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.Accounts {
		c.Accounts[k] = v
	}
	for k, v := range s.Transactions {
		c.Transactions[k] = v
	}
	for k, v := range s.Transfers {
		c.Transfers[k] = v
	}
	return c
}

type Store struct {
	writeSlot chan struct{}

	mu        sync.RWMutex
	committed *state
	failures  map[string]error
}

func New() *Store {
	return &Store{
		writeSlot: make(chan struct{}, 1),
		committed: newState(),
		failures:  make(map[string]error),
	}
}

// FailOn makes every call to op return err until ClearFailures. Ops are named
// "<table>.<Method>", e.g. "transfers.Insert", plus "commit".
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]error)
}

func (s *Store) failure(op string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures[op]
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}

// Write begins a transaction, waiting for any other writer to finish.
func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.writeSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	working := s.snapshot().clone()
	t := &tx{store: s, working: working}
	return storage.NewWriterWith(
		t,
		&accounts{store: s, st: working},
		&transactions{store: s, st: working},
		&transfers{store: s, st: working},
	), nil
}

// Read returns readers over committed data.
func (s *Store) Read() *storage.Reader {
	return &storage.Reader{
		Accounts:     &accounts{store: s},
		Transactions: &transactions{store: s},
		Transfers:    &transfers{store: s},
	}
}

type tx struct {
	store   *Store
	working *state
	done    bool
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer func() { <-t.store.writeSlot }()

	if err := t.store.failure("commit"); err != nil {
		return err
	}

	t.store.mu.Lock()
	t.store.committed = t.working
	t.store.mu.Unlock()
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	<-t.store.writeSlot
	return nil
}

// SeedAccount stores a committed account directly.
func (s *Store) SeedAccount(a account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.committed.clone()
	next.Accounts[a.ID] = a
	s.committed = next
}

// SeedTransaction stores a committed transaction directly, without touching
// any balance.
func (s *Store) SeedTransaction(t transaction.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.committed.clone()
	next.Transactions[t.ID] = t
	s.committed = next
}

func (s *Store) Account(id uuid.UUID) (account.Account, bool) {
	a, ok := s.snapshot().Accounts[id]
	return a, ok
}

func (s *Store) Transaction(id uuid.UUID) (transaction.Transaction, bool) {
	t, ok := s.snapshot().Transactions[id]
	return t, ok
}

func (s *Store) Transfer(id uuid.UUID) (transfer.Transfer, bool) {
	t, ok := s.snapshot().Transfers[id]
	return t, ok
}

// Transactions returns committed transactions ordered by id.
func (s *Store) Transactions() []transaction.Transaction {
	st := s.snapshot()
	out := make([]transaction.Transaction, 0, len(st.Transactions))
	for _, t := range st.Transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (s *Store) TransferCount() int {
	return len(s.snapshot().Transfers)
}

// Dump renders committed state for test failure messages.
func (s *Store) Dump() string {
	return spew.Sdump(s.snapshot())
}
