// Package errors provides standardized error handling for the activity finder API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMalformedSort   ErrorCode = "MALFORMED_SORT"
	ErrCodeURLRequired     ErrorCode = "URL_REQUIRED"
	ErrCodeUnknownBackend  ErrorCode = "UNKNOWN_BACKEND"
	ErrCodeInvalidSettings ErrorCode = "INVALID_SETTINGS"

	ErrCodeSearchConnectionFailed ErrorCode = "SEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed      ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout          ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound          ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeRefDataLoadFailed ErrorCode = "REFDATA_LOAD_FAILED"
	ErrCodeLogInsertFailed   ErrorCode = "LOG_INSERT_FAILED"
	ErrCodeSyncFailed        ErrorCode = "SYNC_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewMalformedSortError creates a non-retryable client error for a sort token
// that does not follow the "<field>__<direction>" form.
func NewMalformedSortError(token string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedSort,
		Message:   "Malformed sort token",
		Details:   fmt.Sprintf("sort: %q", token),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewURLRequiredError creates a non-retryable not-found error for the register
// redirect endpoint when the url parameter is missing.
func NewURLRequiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeURLRequired,
		Message:   "Redirect url is required",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownBackendError creates a non-retryable error for an unregistered
// backend plugin ID.
func NewUnknownBackendError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownBackend,
		Message:   "Unknown activity finder backend",
		Details:   fmt.Sprintf("backend: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSettingsError creates a non-retryable settings validation error.
func NewInvalidSettingsError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSettings,
		Message:   "Activity finder settings failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchConnectionFailedError creates a retryable search engine connection error.
func NewSearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchConnectionFailed,
		Message:   "Search engine connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Search query timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRefDataLoadFailedError creates a retryable reference data error.
func NewRefDataLoadFailedError(kind string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRefDataLoadFailed,
		Message:   "Reference data load error",
		Details:   fmt.Sprintf("kind: %s, error: %s", kind, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLogInsertFailedError creates a retryable log insert error.
func NewLogInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLogInsertFailed,
		Message:   "Log insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSyncFailedError creates a retryable schedule sync error.
func NewSyncFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSyncFailed,
		Message:   "Schedule sync failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps internal error codes to API status codes.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeMalformedSort:
		return http.StatusBadRequest
	case ErrCodeURLRequired, ErrCodeIndexNotFound:
		return http.StatusNotFound
	case ErrCodeSearchTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// CodeOf extracts the error code from err, or empty when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}
