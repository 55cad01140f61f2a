package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/service"
)

type GetTransactionInput struct {
	identity.Headers
	TransactionID string `path:"transactionID" format:"uuid" doc:"Transaction UUID"`
}

type GetTransactionOutput struct {
	Body Transaction
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, userID, householdID, id uuid.UUID) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{transactionID}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{transactionID}",
		Summary:     "Get transaction",
		Description: "Returns one transaction, including its transfer linkage when it is a transfer leg.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	transactionID, err := uuid.FromString(input.TransactionID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transactionID", err)
	}

	t, err := h.TransactionService.GetTransaction(ctx, caller.UserID, caller.HouseholdID, transactionID)
	if err != nil {
		return nil, apierr.From(err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: transactionResponse(t)}, nil
}
