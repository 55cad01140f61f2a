// Package identity reads the caller's user and household from request
// headers set by the upstream auth proxy.
package identity

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// Headers is embedded in every scoped operation's input.
type Headers struct {
	UserID      string `header:"X-User-ID" required:"true" format:"uuid" doc:"Authenticated user UUID"`
	HouseholdID string `header:"X-Household-ID" required:"true" format:"uuid" doc:"Active household UUID"`
}

type Caller struct {
	UserID      uuid.UUID
	HouseholdID uuid.UUID
}

func (h Headers) Caller() (Caller, error) {
	userID, err := uuid.FromString(h.UserID)
	if err != nil {
		return Caller{}, huma.NewError(http.StatusUnauthorized, "invalid X-User-ID", err)
	}
	if userID == uuid.Nil {
		return Caller{}, huma.NewError(http.StatusUnauthorized, "invalid X-User-ID")
	}
	householdID, err := uuid.FromString(h.HouseholdID)
	if err != nil {
		return Caller{}, huma.NewError(http.StatusForbidden, "invalid X-Household-ID", err)
	}
	if householdID == uuid.Nil {
		return Caller{}, huma.NewError(http.StatusForbidden, "invalid X-Household-ID")
	}
	return Caller{UserID: userID, HouseholdID: householdID}, nil
}
