package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ValidationError("bad input")))
	assert.Equal(t, KindQuotaExceeded, KindOf(QuotaExceededError("full")))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("loading staff: %w", NotFoundError("staff member 7 does not exist"))
	assert.True(t, IsKind(err, KindNotFound))
}

func TestErrorMessageFormatting(t *testing.T) {
	err := InvalidStateError("request %d is already %s", 3, "APPROVED")
	assert.Equal(t, "request 3 is already APPROVED", err.Error())
}
