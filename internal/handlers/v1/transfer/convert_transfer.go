package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/service"
)

type ConvertTransferBody struct {
	TransactionID        string `json:"transactionID" format:"uuid" doc:"Existing income or expense to convert"`
	CounterpartAccountID string `json:"counterpartAccountID" format:"uuid" doc:"Account that receives the opposite leg"`
}

type ConvertTransferInput struct {
	identity.Headers
	Body ConvertTransferBody
}

type ConvertTransferOutput struct {
	Status int
	Body   TransferPair
}

type transferConverter interface {
	ConvertTransactionToCanonicalTransfer(ctx context.Context, in service.ConvertToTransferInput) (*service.TransferPair, error)
}

// ConvertTransferHandler handles POST /v1/transfer/convert.
type ConvertTransferHandler struct {
	TransferService transferConverter
}

func NewConvertTransferHandler(svc transferConverter) *ConvertTransferHandler {
	return &ConvertTransferHandler{TransferService: svc}
}

func (h *ConvertTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "convert-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer/convert",
		Summary:     "Convert a transaction to a transfer",
		Description: "Turns an income or expense into one leg of a transfer and creates the opposite leg on the counterpart account.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *ConvertTransferHandler) handle(ctx context.Context, input *ConvertTransferInput) (*ConvertTransferOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	transactionID, err := uuid.FromString(input.Body.TransactionID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transactionID", err)
	}
	counterpartID, err := uuid.FromString(input.Body.CounterpartAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid counterpartAccountID", err)
	}

	pair, err := h.TransferService.ConvertTransactionToCanonicalTransfer(ctx, service.ConvertToTransferInput{
		UserID:               caller.UserID,
		HouseholdID:          caller.HouseholdID,
		TransactionID:        transactionID,
		CounterpartAccountID: counterpartID,
	})
	if err != nil {
		return nil, apierr.From(err, "failed to convert transaction")
	}

	return &ConvertTransferOutput{Status: http.StatusCreated, Body: pairResponse(pair)}, nil
}
