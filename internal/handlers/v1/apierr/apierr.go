// Package apierr turns service errors into HTTP errors.
package apierr

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/money-movement/internal/domainerr"
)

// From maps err by its domain kind. System errors keep msg as the only
// client-visible detail.
func From(err error, msg string) error {
	switch {
	case domainerr.Is(err, domainerr.KindValidation):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case domainerr.Is(err, domainerr.KindNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case domainerr.Is(err, domainerr.KindConflict):
		return huma.NewError(http.StatusConflict, err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, msg)
}
