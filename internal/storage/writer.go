package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

// Committer ends a storage transaction.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Tx is a database transaction that queries can run on.
type Tx interface {
	bob.Executor
	Committer
}

// Writer is the transaction context handed to every multi-row change. All
// table writers share one underlying transaction.
type Writer struct {
	tx           Committer
	Accounts     account.IWriter
	Transactions transaction.IWriter
	Transfers    transfer.IWriter
}

func NewWriter(tx Tx) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     account.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Transfers:    transfer.NewWriter(tx),
	}
}

// NewWriterWith assembles a Writer from explicit parts, for alternate backends.
func NewWriterWith(tx Committer, accounts account.IWriter, transactions transaction.IWriter, transfers transfer.IWriter) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Transactions: transactions,
		Transfers:    transfers,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
