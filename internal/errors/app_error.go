package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	Fields     map[string]string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

// WithFields attaches per-field reasons, keyed by the JSON field name.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	e.Fields = fields

	return e
}

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeStorage           = "STORAGE_ERROR"
	ErrCodeNetworkFetch      = "NETWORK_FETCH_FAILURE"
	ErrCodeStockExceeded     = "STOCK_EXCEEDED"
	ErrCodeEmptySource       = "EMPTY_SOURCE"
	ErrCodeIncompleteProfile = "INCOMPLETE_PROFILE"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeRateLimited       = "RATE_LIMITED"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func StorageError(message string) *AppError {
	return NewAppError(ErrCodeStorage, message, http.StatusInternalServerError)
}

func NetworkFetchError(message string) *AppError {
	return NewAppError(ErrCodeNetworkFetch, message, http.StatusBadGateway)
}

func StockExceededError(message string) *AppError {
	return NewAppError(ErrCodeStockExceeded, message, http.StatusConflict)
}

func EmptySourceError(message string) *AppError {
	return NewAppError(ErrCodeEmptySource, message, http.StatusUnprocessableEntity)
}

func IncompleteProfileError(message string) *AppError {
	return NewAppError(ErrCodeIncompleteProfile, message, http.StatusUnprocessableEntity)
}

func InvalidTransitionError(message string) *AppError {
	return NewAppError(ErrCodeInvalidTransition, message, http.StatusConflict)
}

func RateLimitedError(message string) *AppError {
	return NewAppError(ErrCodeRateLimited, message, http.StatusTooManyRequests)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)

	return ok && appErr.Code == code
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason)).
		WithFields(map[string]string{field: reason})
}
