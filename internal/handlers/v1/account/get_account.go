package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/service"
)

type GetAccountInput struct {
	identity.Headers
	AccountID string `path:"accountID" format:"uuid" doc:"Account UUID"`
}

type GetAccountOutput struct {
	Body Account
}

type accountGetter interface {
	GetAccount(ctx context.Context, userID, householdID, id uuid.UUID) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/account/{accountID}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountID}",
		Summary:     "Get an account",
		Description: "Returns one account of the caller's household, including its current balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}

	acc, err := h.AccountService.GetAccount(ctx, caller.UserID, caller.HouseholdID, accountID)
	if err != nil {
		return nil, apierr.From(err, "failed to get account")
	}
	return &GetAccountOutput{Body: accountResponse(acc)}, nil
}
