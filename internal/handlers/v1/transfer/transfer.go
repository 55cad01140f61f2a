package transfer

import (
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/money"
	"github.com/carson-networks/money-movement/internal/service"
)

const dateLayout = "2006-01-02"

// TransferPair is the response body for operations that create a transfer.
type TransferPair struct {
	TransferGroupID   string `json:"transferGroupID" doc:"Shared transfer group UUID"`
	FromTransactionID string `json:"fromTransactionID" doc:"UUID of the transfer_out leg"`
	ToTransactionID   string `json:"toTransactionID" doc:"UUID of the transfer_in leg"`
}

// TransferChange is the response body for update and delete.
type TransferChange struct {
	TransferGroupID string   `json:"transferGroupID" doc:"Transfer group UUID"`
	TransactionIDs  []string `json:"transactionIDs" doc:"Legs that were changed"`
}

// Transfer is the API response model for a transfer ledger row.
type Transfer struct {
	ID                string `json:"id" doc:"Transfer group UUID"`
	FromAccountID     string `json:"fromAccountID" doc:"Source account UUID"`
	ToAccountID       string `json:"toAccountID" doc:"Destination account UUID"`
	Amount            string `json:"amount" doc:"Decimal amount moved"`
	Fees              string `json:"fees" doc:"Decimal fees, reporting only"`
	Date              string `json:"date" doc:"Transfer date (YYYY-MM-DD)"`
	Description       string `json:"description"`
	Status            string `json:"status" enum:"completed,pending"`
	Notes             string `json:"notes"`
	FromTransactionID string `json:"fromTransactionID,omitempty"`
	ToTransactionID   string `json:"toTransactionID,omitempty"`
}

func pairResponse(p *service.TransferPair) TransferPair {
	return TransferPair{
		TransferGroupID:   p.TransferGroupID.String(),
		FromTransactionID: p.FromTransactionID.String(),
		ToTransactionID:   p.ToTransactionID.String(),
	}
}

func changeResponse(c *service.TransferChange) TransferChange {
	ids := make([]string, len(c.TransactionIDs))
	for i, id := range c.TransactionIDs {
		ids[i] = id.String()
	}
	return TransferChange{TransferGroupID: c.TransferGroupID.String(), TransactionIDs: ids}
}

func transferResponse(t *service.Transfer) Transfer {
	return Transfer{
		ID:                t.ID.String(),
		FromAccountID:     t.FromAccountID.String(),
		ToAccountID:       t.ToAccountID.String(),
		Amount:            money.FormatCents(t.AmountCents),
		Fees:              money.FormatCents(t.FeesCents),
		Date:              t.Date.Format(dateLayout),
		Description:       t.Description,
		Status:            t.Status,
		Notes:             t.Notes,
		FromTransactionID: nullString(t.FromTransactionID),
		ToTransactionID:   nullString(t.ToTransactionID),
	}
}

func nullString(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}
