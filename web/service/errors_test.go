package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("wrapped: %w", newError(KindNotFound, "missing", cause))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, "missing: disk full", newError(KindNotFound, "missing", cause).Error())
	assert.Equal(t, "Conflict", KindConflict.String())
}
