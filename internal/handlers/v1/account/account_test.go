package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/domainerr"
	"github.com/carson-networks/money-movement/internal/service"
)

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) CreateAccount(ctx context.Context, create service.AccountCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAccountService) GetAccount(ctx context.Context, userID, householdID, id uuid.UUID) (*service.Account, error) {
	args := m.Called(ctx, userID, householdID, id)
	acc, _ := args.Get(0).(*service.Account)
	return acc, args.Error(1)
}

var (
	userID      = uuid.Must(uuid.NewV4())
	householdID = uuid.Must(uuid.NewV4())
)

func newTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateAccountHandler(svc).Register(api)
	NewGetAccountHandler(svc).Register(api)
	return api
}

func TestParseCreateAccountInput(t *testing.T) {
	entity := uuid.Must(uuid.NewV4())
	input := &CreateAccountInput{Body: CreateAccountBody{
		Name:            "Joint checking",
		Type:            int(service.AccountTypeChecking),
		EntityID:        entity.String(),
		StartingBalance: "1234.56",
	}}
	input.UserID = userID.String()
	input.HouseholdID = householdID.String()

	create, err := parseCreateAccountInput(input)
	require.NoError(t, err)
	assert.Equal(t, userID, create.UserID)
	assert.Equal(t, householdID, create.HouseholdID)
	assert.Equal(t, uuid.NullUUID{UUID: entity, Valid: true}, create.EntityID)
	assert.Equal(t, int64(123456), create.StartingBalanceCents)
}

func TestParseCreateAccountInput_BadBalance(t *testing.T) {
	input := &CreateAccountInput{Body: CreateAccountBody{Name: "x", StartingBalance: "lots"}}
	input.UserID = userID.String()
	input.HouseholdID = householdID.String()

	_, err := parseCreateAccountInput(input)
	assert.Error(t, err)
}

func TestHTTP_CreateAccount_Success(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(c service.AccountCreate) bool {
		return c.Name == "Savings" && c.Type == service.AccountTypeSavings && c.StartingBalanceCents == 0
	})).Return(id, nil)

	resp := newTestAPI(t, svc).Post("/v1/account",
		"X-User-ID: "+userID.String(),
		"X-Household-ID: "+householdID.String(),
		CreateAccountBody{Name: "Savings", Type: 1})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateAccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, id.String(), body.ID)
	svc.AssertExpectations(t)
}

func TestHTTP_CreateAccount_TypeOutOfRange(t *testing.T) {
	svc := new(mockAccountService)

	resp := newTestAPI(t, svc).Post("/v1/account",
		"X-User-ID: "+userID.String(),
		"X-Household-ID: "+householdID.String(),
		CreateAccountBody{Name: "Savings", Type: 9})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "CreateAccount")
}

func TestHTTP_CreateAccount_ServiceError(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("CreateAccount", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("database unavailable"))

	resp := newTestAPI(t, svc).Post("/v1/account",
		"X-User-ID: "+userID.String(),
		"X-Household-ID: "+householdID.String(),
		CreateAccountBody{Name: "Savings"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "database unavailable")
}

func TestHTTP_GetAccount(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockAccountService)
	svc.On("GetAccount", mock.Anything, userID, householdID, id).Return(&service.Account{
		ID:           id,
		Name:         "Checking",
		Type:         service.AccountTypeChecking,
		BalanceCents: null.From(int64(7500)),
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/account/"+id.String(),
		"X-User-ID: "+userID.String(),
		"X-Household-ID: "+householdID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "75.00", body.Balance)
	assert.Equal(t, "2025-01-01T00:00:00Z", body.CreatedAt)
	assert.Empty(t, body.EntityID)
}

func TestHTTP_GetAccount_NotFound(t *testing.T) {
	svc := new(mockAccountService)
	svc.On("GetAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainerr.NotFound("getAccount", "account not found"))

	resp := newTestAPI(t, svc).Get("/v1/account/"+uuid.Must(uuid.NewV4()).String(),
		"X-User-ID: "+userID.String(),
		"X-Household-ID: "+householdID.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
