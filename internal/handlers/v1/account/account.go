package account

import (
	"time"

	"github.com/carson-networks/money-movement/internal/money"
	"github.com/carson-networks/money-movement/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID        string `json:"id" doc:"Account UUID"`
	EntityID  string `json:"entityID,omitempty" doc:"Owning entity UUID"`
	Name      string `json:"name" doc:"Account name"`
	Type      int    `json:"type" doc:"Account type: 0=Checking, 1=Savings, 2=Credit, 3=Line of credit, 4=Cash, 5=Investment"`
	SubType   string `json:"subType" doc:"Account sub-type"`
	Balance   string `json:"balance,omitempty" doc:"Decimal current balance, absent when never set"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

func accountResponse(a *service.Account) Account {
	resp := Account{
		ID:        a.ID.String(),
		Name:      a.Name,
		Type:      int(a.Type),
		SubType:   a.SubType,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.EntityID.Valid {
		resp.EntityID = a.EntityID.UUID.String()
	}
	if cents, ok := a.BalanceCents.Get(); ok {
		resp.Balance = money.FormatCents(cents)
	}
	return resp
}
