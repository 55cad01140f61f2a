package identity

import (
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaller(t *testing.T) {
	user, house := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	caller, err := Headers{UserID: user.String(), HouseholdID: house.String()}.Caller()
	require.NoError(t, err)
	assert.Equal(t, user, caller.UserID)
	assert.Equal(t, house, caller.HouseholdID)
}

func TestCaller_Rejects(t *testing.T) {
	house := uuid.Must(uuid.NewV4()).String()

	cases := []struct {
		name    string
		headers Headers
		status  int
	}{
		{"bad user", Headers{UserID: "nope", HouseholdID: house}, 401},
		{"nil user", Headers{UserID: uuid.Nil.String(), HouseholdID: house}, 401},
		{"nil household", Headers{UserID: house, HouseholdID: uuid.Nil.String()}, 403},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.headers.Caller()
			var statusErr huma.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.status, statusErr.GetStatus())
		})
	}
}
