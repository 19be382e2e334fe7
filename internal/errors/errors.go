// Package errors defines the application error taxonomy. Every failure a
// handler can return is an *AppError; the response helpers shape them into a
// uniform {success:false, statusCode, message} body so internal detail never
// reaches a client.
package errors

import "net/http"

// AppError is a structured application error: a stable machine code, a
// client-safe message, the HTTP status to respond with, and an optional
// internal cause that is logged but never serialized.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a more specific message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication and authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "You are not authorized to access this resource", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound          = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetExists            = &AppError{Code: "BUDGET_EXISTS", Message: "A budget for this period already exists", StatusCode: http.StatusConflict}
	ErrAllocationExceedsTotal  = &AppError{Code: "ALLOCATION_EXCEEDS_TOTAL", Message: "Total planned amount cannot exceed total budget", StatusCode: http.StatusBadRequest}
	ErrInvalidBudgetPeriod     = &AppError{Code: "INVALID_BUDGET_PERIOD", Message: "Month must be 1-12 and year must not be in the future", StatusCode: http.StatusBadRequest}
	ErrInvalidBudgetCategories = &AppError{Code: "INVALID_BUDGET_CATEGORIES", Message: "One or more budget categories are invalid", StatusCode: http.StatusBadRequest}
)
