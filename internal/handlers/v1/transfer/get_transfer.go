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

type GetTransferInput struct {
	identity.Headers
	TransferID string `path:"transferID" format:"uuid" doc:"Transfer group UUID"`
}

type GetTransferOutput struct {
	Body Transfer
}

type transferGetter interface {
	GetTransfer(ctx context.Context, userID, householdID, id uuid.UUID) (*service.Transfer, error)
}

// GetTransferHandler handles GET /v1/transfer/{transferID}.
type GetTransferHandler struct {
	TransferService transferGetter
}

func NewGetTransferHandler(svc transferGetter) *GetTransferHandler {
	return &GetTransferHandler{TransferService: svc}
}

func (h *GetTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transfer",
		Method:      http.MethodGet,
		Path:        "/v1/transfer/{transferID}",
		Summary:     "Get a transfer",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *GetTransferHandler) handle(ctx context.Context, input *GetTransferInput) (*GetTransferOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	transferID, err := uuid.FromString(input.TransferID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transferID", err)
	}

	t, err := h.TransferService.GetTransfer(ctx, caller.UserID, caller.HouseholdID, transferID)
	if err != nil {
		return nil, apierr.From(err, "failed to get transfer")
	}
	return &GetTransferOutput{Body: transferResponse(t)}, nil
}
