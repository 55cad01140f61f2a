package transfer

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

// CreateTransferBody is the request body for creating a transfer.
type CreateTransferBody struct {
	FromAccountID string `json:"fromAccountID" format:"uuid" doc:"Source account UUID"`
	ToAccountID   string `json:"toAccountID" format:"uuid" doc:"Destination account UUID"`
	Amount        string `json:"amount" doc:"Decimal amount, e.g. '25.00'"`
	Fees          string `json:"fees,omitempty" doc:"Decimal fees, recorded on the ledger only, defaults to 0"`
	Date          string `json:"date,omitempty" format:"date" doc:"Transfer date (YYYY-MM-DD), defaults to today"`
	Description   string `json:"description,omitempty" doc:"Shown on both legs"`
	Notes         string `json:"notes,omitempty"`
}

type CreateTransferInput struct {
	identity.Headers
	Body CreateTransferBody
}

type CreateTransferOutput struct {
	Status int
	Body   TransferPair
}

type transferCreator interface {
	CreateCanonicalTransferPair(ctx context.Context, in service.CreateTransferPairInput) (*service.TransferPair, error)
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	TransferService transferCreator
}

func NewCreateTransferHandler(svc transferCreator) *CreateTransferHandler {
	return &CreateTransferHandler{TransferService: svc}
}

func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Create a transfer",
		Description: "Moves money between two accounts of the household as a transfer_out leg, a transfer_in leg and one ledger row.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func parseCreateTransferInput(input *CreateTransferInput, today time.Time) (service.CreateTransferPairInput, error) {
	caller, err := input.Caller()
	if err != nil {
		return service.CreateTransferPairInput{}, err
	}
	fromAccountID, err := uuid.FromString(input.Body.FromAccountID)
	if err != nil {
		return service.CreateTransferPairInput{}, huma.NewError(http.StatusBadRequest, "invalid fromAccountID", err)
	}
	toAccountID, err := uuid.FromString(input.Body.ToAccountID)
	if err != nil {
		return service.CreateTransferPairInput{}, huma.NewError(http.StatusBadRequest, "invalid toAccountID", err)
	}
	amountCents, err := money.ParseCents(input.Body.Amount)
	if err != nil {
		return service.CreateTransferPairInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var feesCents int64
	if input.Body.Fees != "" {
		feesCents, err = money.ParseCents(input.Body.Fees)
		if err != nil {
			return service.CreateTransferPairInput{}, huma.NewError(http.StatusBadRequest, "invalid fees", err)
		}
	}

	date := today
	if input.Body.Date != "" {
		date, err = time.Parse(dateLayout, input.Body.Date)
		if err != nil {
			return service.CreateTransferPairInput{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
		}
	}

	return service.CreateTransferPairInput{
		UserID:        caller.UserID,
		HouseholdID:   caller.HouseholdID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		AmountCents:   amountCents,
		FeesCents:     feesCents,
		Date:          date,
		Description:   input.Body.Description,
		Notes:         input.Body.Notes,
	}, nil
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	in, err := parseCreateTransferInput(input, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}

	pair, err := h.TransferService.CreateCanonicalTransferPair(ctx, in)
	if err != nil {
		return nil, apierr.From(err, "failed to create transfer")
	}

	if logData != nil {
		logData.AddData("transferGroupID", pair.TransferGroupID.String())
	}

	return &CreateTransferOutput{
		Status: http.StatusCreated,
		Body:   pairResponse(pair),
	}, nil
}
