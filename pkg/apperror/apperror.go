package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	// Fields carries caller-correctable, field-keyed messages for
	// validation and conflict responses. When set, it becomes the
	// response body verbatim.
	Fields map[string]string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(field, message string) *AppError {
	e := NewAppError(ErrNotFound, message, message, nil)
	e.Fields = map[string]string{field: message}
	return e
}

func NewValidation(fields map[string]string) *AppError {
	e := NewAppError(ErrInvalidInput, "Validation failed", fmt.Sprintf("%d invalid field(s)", len(fields)), nil)
	e.Fields = fields
	return e
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(field, message string) *AppError {
	e := NewAppError(ErrConflict, message, message, nil)
	e.Fields = map[string]string{field: message}
	return e
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "Server error", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Unauthorized", details, err)
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	// Legacy API contract: handle/email collisions are reported as
	// 400 with a field-keyed body, not 409.
	if errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrPermission) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	if len(e.Fields) > 0 {
		body := gin.H{}
		for k, v := range e.Fields {
			body[k] = v
		}
		return body
	}
	if errors.Is(e.BaseError, ErrInternal) {
		return gin.H{"error": "Server error"}
	}
	return gin.H{"error": e.Message}
}
