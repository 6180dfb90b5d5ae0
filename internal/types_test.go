package internal

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	err := newError(KindGenerationFailed, cause, "generating notes")

	assert.Equal(t, KindGenerationFailed, KindOf(err))
	assert.Equal(t, KindGenerationFailed, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "generating notes: boom", newError(KindGenerationFailed, errors.New("boom"), "generating notes").Error())
	assert.Equal(t, `could not extract video ID from "x"`, newError(KindIdentifierNotFound, nil, "could not extract video ID from %q", "x").Error())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "transcripts disabled", KindTranscriptsDisabled.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
