package transfer

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/logging"
	"github.com/carson-networks/money-movement/internal/service"
)

type LinkTransferBody struct {
	FirstTransactionID  string `json:"firstTransactionID" format:"uuid" doc:"One existing income or expense"`
	SecondTransactionID string `json:"secondTransactionID" format:"uuid" doc:"Its opposite-direction counterpart"`
}

type LinkTransferInput struct {
	identity.Headers
	Body LinkTransferBody
}

type LinkTransferOutput struct {
	Status int
	Body   TransferPair
}

type transferLinker interface {
	LinkExistingTransactionsAsCanonicalTransfer(ctx context.Context, in service.LinkTransactionsInput) (*service.TransferPair, error)
}

// LinkTransferHandler handles POST /v1/transfer/link.
type LinkTransferHandler struct {
	TransferService transferLinker
}

func NewLinkTransferHandler(svc transferLinker) *LinkTransferHandler {
	return &LinkTransferHandler{TransferService: svc}
}

func (h *LinkTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "link-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer/link",
		Summary:     "Link two transactions as a transfer",
		Description: "Re-types an existing expense and income of equal amount on different accounts as the two legs of one transfer. Balances are not changed.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *LinkTransferHandler) handle(ctx context.Context, input *LinkTransferInput) (*LinkTransferOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	first, err := uuid.FromString(input.Body.FirstTransactionID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid firstTransactionID", err)
	}
	second, err := uuid.FromString(input.Body.SecondTransactionID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid secondTransactionID", err)
	}

	pair, err := h.TransferService.LinkExistingTransactionsAsCanonicalTransfer(ctx, service.LinkTransactionsInput{
		UserID:              caller.UserID,
		HouseholdID:         caller.HouseholdID,
		FirstTransactionID:  first,
		SecondTransactionID: second,
	})
	if err != nil {
		return nil, apierr.From(err, "failed to link transfer")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transferGroupID", pair.TransferGroupID.String())
	}

	return &LinkTransferOutput{Status: http.StatusCreated, Body: pairResponse(pair)}, nil
}
