package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/money"
	"github.com/carson-networks/money-movement/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID   string `json:"accountID" format:"uuid" doc:"Account UUID"`
	Kind        string `json:"kind" enum:"income,expense" doc:"Direction of the money"`
	Amount      string `json:"amount" doc:"Unsigned decimal amount"`
	Date        string `json:"date,omitempty" format:"date" doc:"Transaction date (YYYY-MM-DD), defaults to today"`
	Description string `json:"description" minLength:"1" doc:"Description of the transaction"`
	CategoryID  string `json:"categoryID,omitempty" format:"uuid" doc:"Category UUID"`
	MerchantID  string `json:"merchantID,omitempty" format:"uuid" doc:"Merchant UUID"`
	Notes       string `json:"notes,omitempty"`
	IsPending   bool   `json:"isPending,omitempty"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	identity.Headers
	Body CreateTransactionBody
}

type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records an income or expense and posts it to the account balance.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func optionalID(raw, field string) (uuid.NullUUID, error) {
	if raw == "" {
		return uuid.NullUUID{}, nil
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.NullUUID{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return uuid.NullUUID{UUID: id, Valid: true}, nil
}

func parseCreateTransactionInput(input *CreateTransactionInput, today time.Time) (service.TransactionCreate, error) {
	caller, err := input.Caller()
	if err != nil {
		return service.TransactionCreate{}, err
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	amountCents, err := money.ParseCents(input.Body.Amount)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	categoryID, err := optionalID(input.Body.CategoryID, "categoryID")
	if err != nil {
		return service.TransactionCreate{}, err
	}
	merchantID, err := optionalID(input.Body.MerchantID, "merchantID")
	if err != nil {
		return service.TransactionCreate{}, err
	}

	date := today
	if input.Body.Date != "" {
		date, err = time.Parse(dateLayout, input.Body.Date)
		if err != nil {
			return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	return service.TransactionCreate{
		UserID:      caller.UserID,
		HouseholdID: caller.HouseholdID,
		AccountID:   accountID,
		Kind:        service.TransactionKind(input.Body.Kind),
		AmountCents: amountCents,
		Date:        date,
		Description: input.Body.Description,
		CategoryID:  categoryID,
		MerchantID:  merchantID,
		Notes:       input.Body.Notes,
		IsPending:   input.Body.IsPending,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.From(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: id.String()},
	}, nil
}
