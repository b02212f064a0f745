package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	DecodeError       ErrorType = "DECODE_ERROR"
	BlobError         ErrorType = "BLOB_ERROR"
	StorageError      ErrorType = "STORAGE_ERROR"
	NotificationError ErrorType = "NOTIFICATION_ERROR"
	ServerError       ErrorType = "SERVER_ERROR"
)

// AppError represents a structured, stage-classified error. The stage type is
// only visible internally (logs, tests); the external contract collapses
// every post-parse failure to a uniform 500 at the handler boundary.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the raw collaborator error for errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// RawText returns the underlying collaborator error text verbatim, falling
// back to the structured message. This is what the caller sees in the
// response's "error" field.
func (e *AppError) RawText() string {
	if e.Raw != nil {
		return e.Raw.Error()
	}
	return e.Message
}

// New creates a new AppError.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper constructors for the pipeline stages.

func ValidationFailed(message string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewDecodeError(err error) *AppError {
	return Wrap(err, DecodeError, "failed to decode request payload")
}

func NewBlobError(err error) *AppError {
	return Wrap(err, BlobError, "attachment storage failed")
}

func NewStorageError(err error) *AppError {
	return Wrap(err, StorageError, "feedback record write failed")
}

func NewNotificationError(err error) *AppError {
	return Wrap(err, NotificationError, "admin notification failed")
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
