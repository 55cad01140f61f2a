package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/money-movement/internal/domainerr"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domainerr.Validation("op", "bad"), http.StatusBadRequest},
		{"not found", domainerr.NotFound("op", "gone"), http.StatusNotFound},
		{"conflict", domainerr.Conflict("op", "taken"), http.StatusConflict},
		{"system", domainerr.System("op", errors.New("dsn secret")), http.StatusInternalServerError},
		{"untyped", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped conflict", fmt.Errorf("create: %w", domainerr.Conflict("op", "taken")), http.StatusConflict},
		{"nil", nil, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var statusErr huma.StatusError
			require.ErrorAs(t, From(tc.err, "failed"), &statusErr)
			assert.Equal(t, tc.status, statusErr.GetStatus())
		})
	}
}

func TestFrom_HidesSystemDetail(t *testing.T) {
	err := From(domainerr.System("op", errors.New("dsn secret")), "failed to create transfer")
	assert.NotContains(t, err.Error(), "dsn secret")
}
