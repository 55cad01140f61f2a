package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/money-movement/internal/storage/account"
	"github.com/carson-networks/money-movement/internal/storage/transaction"
	"github.com/carson-networks/money-movement/internal/storage/transfer"
)

type Reader struct {
	Accounts     account.IReader
	Transactions transaction.IReader
	Transfers    transfer.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Transfers:    transfer.NewReader(exec),
	}
}
