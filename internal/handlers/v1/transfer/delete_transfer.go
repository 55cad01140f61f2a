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

type DeleteByTransactionInput struct {
	identity.Headers
	TransactionID string `path:"transactionID" format:"uuid" doc:"Either leg of the transfer"`
}

type DeleteByTransferInput struct {
	identity.Headers
	TransferID string `path:"transferID" format:"uuid" doc:"Transfer group UUID"`
}

type DeleteTransferOutput struct {
	Body TransferChange
}

type transferDeleter interface {
	DeleteCanonicalTransferPairByTransactionID(ctx context.Context, in service.DeleteTransferPairInput) (*service.TransferChange, error)
	DeleteCanonicalTransferPairByTransferID(ctx context.Context, in service.DeleteTransferInput) (*service.TransferChange, error)
}

// DeleteTransferHandler handles both delete routes. Either one removes the
// legs and ledger row and restores both balances.
type DeleteTransferHandler struct {
	TransferService transferDeleter
}

func NewDeleteTransferHandler(svc transferDeleter) *DeleteTransferHandler {
	return &DeleteTransferHandler{TransferService: svc}
}

func (h *DeleteTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transfer-by-transaction",
		Method:      http.MethodDelete,
		Path:        "/v1/transfer/transaction/{transactionID}",
		Summary:     "Delete a transfer by one of its legs",
		Tags:        []string{"Transfers"},
	}, h.handleByTransaction)

	huma.Register(api, huma.Operation{
		OperationID: "delete-transfer",
		Method:      http.MethodDelete,
		Path:        "/v1/transfer/{transferID}",
		Summary:     "Delete a transfer",
		Tags:        []string{"Transfers"},
	}, h.handleByTransfer)
}

func (h *DeleteTransferHandler) handleByTransaction(ctx context.Context, input *DeleteByTransactionInput) (*DeleteTransferOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	transactionID, err := uuid.FromString(input.TransactionID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transactionID", err)
	}

	change, err := h.TransferService.DeleteCanonicalTransferPairByTransactionID(ctx, service.DeleteTransferPairInput{
		UserID:        caller.UserID,
		HouseholdID:   caller.HouseholdID,
		TransactionID: transactionID,
	})
	if err != nil {
		return nil, apierr.From(err, "failed to delete transfer")
	}
	return deleted(ctx, change), nil
}

func (h *DeleteTransferHandler) handleByTransfer(ctx context.Context, input *DeleteByTransferInput) (*DeleteTransferOutput, error) {
	caller, err := input.Caller()
	if err != nil {
		return nil, err
	}
	transferID, err := uuid.FromString(input.TransferID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transferID", err)
	}

	change, err := h.TransferService.DeleteCanonicalTransferPairByTransferID(ctx, service.DeleteTransferInput{
		UserID:      caller.UserID,
		HouseholdID: caller.HouseholdID,
		TransferID:  transferID,
	})
	if err != nil {
		return nil, apierr.From(err, "failed to delete transfer")
	}
	return deleted(ctx, change), nil
}

func deleted(ctx context.Context, change *service.TransferChange) *DeleteTransferOutput {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transferGroupID", change.TransferGroupID.String())
		logData.AddData("deletedLegs", len(change.TransactionIDs))
	}
	return &DeleteTransferOutput{Body: changeResponse(change)}
}
