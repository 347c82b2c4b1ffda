// Package errors provides standardized error handling for the review console.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation errors: raised at staging time, never reach the network.
	ErrCodeEmptyNote          ErrorCode = "EMPTY_NOTE"
	ErrCodeEmptyDocumentField ErrorCode = "EMPTY_DOCUMENT_FIELD"
	ErrCodeInvalidStatus      ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidRound       ErrorCode = "INVALID_ROUND"
	ErrCodeUnknownChecklistID ErrorCode = "UNKNOWN_CHECKLIST_ID"
	ErrCodeInvalidPatch       ErrorCode = "INVALID_PATCH"

	// Commit lifecycle errors.
	ErrCodeCommitInProgress ErrorCode = "COMMIT_IN_PROGRESS"
	ErrCodeCommitFailed     ErrorCode = "COMMIT_FAILED"
	ErrCodeProjectMismatch  ErrorCode = "PROJECT_MISMATCH"

	// Store/transport errors.
	ErrCodeStoreUnavailable  ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeStoreDecodeFailed ErrorCode = "STORE_DECODE_FAILED"
	ErrCodeProjectNotFound   ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// CodeOf returns the error code carried by err, or "" if err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsValidation reports whether err is a staging-time validation rejection.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeEmptyNote, ErrCodeEmptyDocumentField, ErrCodeInvalidStatus,
		ErrCodeInvalidRound, ErrCodeUnknownChecklistID, ErrCodeInvalidPatch:
		return true
	}
	return false
}

// IsRetryable reports whether the caller may retry the failed operation with
// the same input.
func IsRetryable(err error) bool {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// NewEmptyNoteError rejects an empty or whitespace-only note at staging time.
func NewEmptyNoteError(round string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyNote,
		Message:   "Note text must not be empty",
		Details:   fmt.Sprintf("round: %s", round),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyDocumentFieldError rejects a document addition missing name or url.
func NewEmptyDocumentFieldError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyDocumentField,
		Message:   "Document name and url must not be empty",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStatusError rejects a status outside the fixed enumeration.
func NewInvalidStatusError(status string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStatus,
		Message:   "Status is not part of the fixed enumeration",
		Details:   fmt.Sprintf("status: %s", status),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRoundError rejects a round name outside the fixed set.
func NewInvalidRoundError(round string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRound,
		Message:   "Round name is not part of the fixed set",
		Details:   fmt.Sprintf("round: %s", round),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownChecklistIDError rejects an update for a checklist item that is
// not part of the seeded set.
func NewUnknownChecklistIDError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownChecklistID,
		Message:   "Checklist item is not part of the seeded set",
		Details:   fmt.Sprintf("checklistId: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPatchError rejects a patch payload that fails schema validation.
func NewInvalidPatchError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPatch,
		Message:   "Patch payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCommitInProgressError rejects a second commit for a project with one
// already in flight. The caller should disable the trigger, not queue.
func NewCommitInProgressError(projectID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCommitInProgress,
		Message:   "A commit for this project is already in flight",
		Details:   fmt.Sprintf("projectId: %s", projectID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCommitFailedError wraps a store failure. Local optimistic state and the
// staged diff are preserved so a retry reproduces the same patch.
func NewCommitFailedError(projectID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCommitFailed,
		Message:   "Commit rejected by the remote store",
		Details:   fmt.Sprintf("projectId: %s, error: %v", projectID, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProjectMismatchError rejects a diff scoped to a different project.
func NewProjectMismatchError(want, got string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProjectMismatch,
		Message:   "Pending change belongs to a different project",
		Details:   fmt.Sprintf("want: %s, got: %s", want, got),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnavailableError creates a retryable transport error.
func NewStoreUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnavailable,
		Message:   "Remote store request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStoreDecodeFailedError creates a non-retryable payload decode error.
func NewStoreDecodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreDecodeFailed,
		Message:   "Remote store response could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewProjectNotFoundError creates a non-retryable lookup error.
func NewProjectNotFoundError(projectID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProjectNotFound,
		Message:   "Project not found",
		Details:   fmt.Sprintf("projectId: %s", projectID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Snapshot cache request failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
