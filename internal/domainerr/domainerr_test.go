package domainerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("op", "bad %d", 1)))
	assert.Equal(t, KindNotFound, KindOf(NotFound("op", "missing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("op", "paired")))
	assert.Equal(t, KindSystem, KindOf(System("op", errors.New("boom"))))
	assert.Equal(t, KindSystem, KindOf(errors.New("untagged")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("operator: %w", Conflict("link", "already paired"))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(nil, KindConflict))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "create: amount must be positive", Validation("create", "amount must be positive").Error())

	cause := errors.New("connection reset")
	err := System("delete", cause)
	assert.Equal(t, "delete: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestSystem_Nil(t *testing.T) {
	assert.NoError(t, System("op", nil))
}
