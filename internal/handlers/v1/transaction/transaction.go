package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/money"
	"github.com/carson-networks/money-movement/internal/service"
)

const dateLayout = "2006-01-02"

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                           string `json:"id" doc:"Transaction UUID"`
	AccountID                    string `json:"accountID" doc:"Account UUID"`
	Type                         string `json:"type" enum:"income,expense,transfer_in,transfer_out"`
	Amount                       string `json:"amount" doc:"Unsigned decimal amount"`
	Date                         string `json:"date" doc:"Transaction date (YYYY-MM-DD)"`
	Description                  string `json:"description"`
	CategoryID                   string `json:"categoryID,omitempty"`
	MerchantID                   string `json:"merchantID,omitempty"`
	Notes                        string `json:"notes"`
	IsPending                    bool   `json:"isPending"`
	TransferID                   string `json:"transferID,omitempty" doc:"Set on transfer legs"`
	PairedTransactionID          string `json:"pairedTransactionID,omitempty" doc:"The opposite leg"`
	TransferSourceAccountID      string `json:"transferSourceAccountID,omitempty"`
	TransferDestinationAccountID string `json:"transferDestinationAccountID,omitempty"`
	CreatedAt                    string `json:"createdAt"`
	UpdatedAt                    string `json:"updatedAt"`
}

func transactionResponse(t *service.Transaction) Transaction {
	return Transaction{
		ID:                           t.ID.String(),
		AccountID:                    t.AccountID.String(),
		Type:                         t.Type,
		Amount:                       money.FormatCents(t.AmountCents),
		Date:                         t.Date.Format(dateLayout),
		Description:                  t.Description,
		CategoryID:                   nullString(t.CategoryID),
		MerchantID:                   nullString(t.MerchantID),
		Notes:                        t.Notes,
		IsPending:                    t.IsPending,
		TransferID:                   nullString(t.TransferID),
		PairedTransactionID:          nullString(t.PairedTransactionID),
		TransferSourceAccountID:      nullString(t.TransferSourceAccountID),
		TransferDestinationAccountID: nullString(t.TransferDestinationAccountID),
		CreatedAt:                    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                    t.UpdatedAt.Format(time.RFC3339),
	}
}

func nullString(id uuid.NullUUID) string {
	if !id.Valid {
		return ""
	}
	return id.UUID.String()
}
