package transaction

import "fmt"

type Type string

const (
	TypeIncome      Type = "income"
	TypeExpense     Type = "expense"
	TypeTransferOut Type = "transfer_out"
	TypeTransferIn  Type = "transfer_in"
)

// Direction is the cash-flow direction of a transaction on its own account.
type Direction int8

const (
	DirectionInbound Direction = iota + 1
	DirectionOutbound
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransferOut, TypeTransferIn:
		return true
	}
	return false
}

func (t Type) IsTransfer() bool {
	switch t {
	case TypeTransferOut, TypeTransferIn:
		return true
	case TypeIncome, TypeExpense:
		return false
	}
	return false
}

// Direction panics on an unknown type; callers validate first.
func (t Type) Direction() Direction {
	switch t {
	case TypeIncome, TypeTransferIn:
		return DirectionInbound
	case TypeExpense, TypeTransferOut:
		return DirectionOutbound
	}
	panic(fmt.Sprintf("transaction: direction of unknown type %q", string(t)))
}

// TransferType is the transfer leg type carrying the same direction as t.
func (t Type) TransferType() Type {
	if t.Direction() == DirectionOutbound {
		return TypeTransferOut
	}
	return TypeTransferIn
}
