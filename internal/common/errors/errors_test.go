package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	err := NewEmptyNoteError("firstRound")
	assert.Equal(t, ErrCodeEmptyNote, CodeOf(err))

	wrapped := fmt.Errorf("staging failed: %w", err)
	assert.Equal(t, ErrCodeEmptyNote, CodeOf(wrapped))

	assert.Equal(t, ErrorCode(""), CodeOf(stderrors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewEmptyNoteError("firstRound")))
	assert.True(t, IsValidation(NewEmptyDocumentFieldError("url")))
	assert.True(t, IsValidation(NewInvalidStatusError("SHORTLISTED")))
	assert.False(t, IsValidation(NewCommitInProgressError("p-1")))
	assert.False(t, IsValidation(NewStoreUnavailableError(stderrors.New("down"))))
}

func TestRetryableAndUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewCommitFailedError("p-1", cause)

	assert.True(t, IsRetryable(err))
	assert.True(t, stderrors.Is(err, cause), "cause must survive for errors.Is")
	assert.False(t, IsRetryable(NewCommitInProgressError("p-1")))
	assert.False(t, IsRetryable(NewStoreDecodeFailedError(cause)))
}

func TestStandardError_Message(t *testing.T) {
	err := NewCommitInProgressError("p-1")
	require.Contains(t, err.Error(), "COMMIT_IN_PROGRESS")
	assert.Contains(t, err.Details, "p-1")
}
