package transfer

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/money-movement/internal/handlers/v1/apierr"
	"github.com/carson-networks/money-movement/internal/handlers/v1/identity"
	"github.com/carson-networks/money-movement/internal/service"
)

// UpdateTransferBody holds the only mutable transfer fields. Absent fields
// are left unchanged.
type UpdateTransferBody struct {
	Description *string `json:"description,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateTransferInput struct {
	identity.Headers
	TransactionID string `path:"transactionID" format:"uuid" doc:"Either leg of the transfer"`
	Body          UpdateTransferBody
}

type UpdateTransferOutput struct {
	Body TransferChange
}

type transferUpdater interface {
	UpdateCanonicalTransferPairByTransactionID(ctx context.Context, in service.UpdateTransferPairInput) (*service.TransferChange, error)
}

// UpdateTransferHandler handles PATCH /v1/transfer/transaction/{transactionID}.
type UpdateTransferHandler struct {
	TransferService transferUpdater
}

func NewUpdateTransferHandler(svc transferUpdater) *UpdateTransferHandler {
	return &UpdateTransferHandler{TransferService: svc}
}

func (h *UpdateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transfer",
		Method:      http.MethodPatch,
		Path:        "/v1/transfer/transaction/{transactionID}",
		Summary:     "Update transfer description or notes",
		Description: "Applies description and notes to both legs and the ledger row together.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func optional(v *string) omit.Val[string] {
	if v == nil {
		return omit.Val[string]{}
	}
	return omit.From(*v)
}

func (h *UpdateTransferHandler) handle(ctx context.Context, input *UpdateTransferInput) (*UpdateTransferOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	transactionID, err := uuid.FromString(input.TransactionID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transactionID", err)
	}

	change, err := h.TransferService.UpdateCanonicalTransferPairByTransactionID(ctx, service.UpdateTransferPairInput{
		UserID:        caller.UserID,
		HouseholdID:   caller.HouseholdID,
		TransactionID: transactionID,
		Description:   optional(input.Body.Description),
		Notes:         optional(input.Body.Notes),
	})
	if err != nil {
		return nil, apierr.From(err, "failed to update transfer")
	}

	return &UpdateTransferOutput{Body: changeResponse(change)}, nil
}
