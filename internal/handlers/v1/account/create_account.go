package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/money"
	"github.com/carson-networks/money-movement/internal/service"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	identity.Headers
	Body CreateAccountBody
}

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            int    `json:"type" minimum:"0" maximum:"5" doc:"Account type: 0=Checking, 1=Savings, 2=Credit, 3=Line of credit, 4=Cash, 5=Investment"`
	SubType         string `json:"subType,omitempty" doc:"Account sub-type"`
	EntityID        string `json:"entityID,omitempty" format:"uuid" doc:"Owning entity UUID"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

type accountCreator interface {
	CreateAccount(ctx context.Context, create service.AccountCreate) (uuid.UUID, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account in the caller's household with the given name, type, sub-type, and starting balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.AccountCreate, error) {
	caller, err := input.Caller()
	if err != nil {
		return service.AccountCreate{}, err
	}

	var startingBalance int64
	if input.Body.StartingBalance != "" {
		startingBalance, err = money.ParseCents(input.Body.StartingBalance)
		if err != nil {
			return service.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
		}
	}

	var entityID uuid.NullUUID
	if input.Body.EntityID != "" {
		id, err := uuid.FromString(input.Body.EntityID)
		if err != nil {
			return service.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid entityID", err)
		}
		entityID = uuid.NullUUID{UUID: id, Valid: true}
	}

	if input.Body.Type < 0 || input.Body.Type > int(service.AccountTypeInvestment) {
		return service.AccountCreate{}, huma.NewError(http.StatusBadRequest, "type must be 0-5")
	}

	return service.AccountCreate{
		UserID:               caller.UserID,
		HouseholdID:          caller.HouseholdID,
		EntityID:             entityID,
		Name:                 input.Body.Name,
		Type:                 service.AccountType(input.Body.Type),
		SubType:              input.Body.SubType,
		StartingBalanceCents: startingBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	id, err := h.AccountService.CreateAccount(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierr.From(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: id.String()},
	}, nil
}
