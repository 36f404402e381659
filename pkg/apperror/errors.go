package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Retryable  bool   `json:"-"` // Whether the scheduler may retry the operation
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Gateway Protocol (SIG / GW) ----

// ErrSignatureInvalid marks an inbound callback that failed CheckMacValue
// verification. Logged and flagged for review, never retried.
func ErrSignatureInvalid() *AppError {
	return New("SIG_001", "Callback signature verification failed", http.StatusUnauthorized)
}

// ErrGatewayRejected marks a synchronous 4xx rejection from the gateway
// (bad signature, invalid merchant id). Fatal configuration error, never retried.
func ErrGatewayRejected(detail string) *AppError {
	return New("GW_001", fmt.Sprintf("Gateway rejected request: %s", detail), http.StatusBadGateway)
}

// ErrGatewayUnavailable marks a timeout or 5xx from the gateway.
// Retryable with backoff, bounded by max_retries.
func ErrGatewayUnavailable(err error) *AppError {
	e := Wrap("GW_002", "Gateway unavailable", http.StatusBadGateway, err)
	e.Retryable = true
	return e
}

// ---- Subscription Lifecycle (SUB) ----

// ErrDuplicateDelivery marks a deduplicated webhook. The HTTP layer treats it
// as success; callers short-circuit without touching the ledger.
func ErrDuplicateDelivery() *AppError {
	return New("SUB_001", "Duplicate webhook delivery", http.StatusOK)
}

// ErrStateConflict marks an event arriving for a subscription in a state that
// cannot accept it. Logged and ignored, never crashes a sweep.
func ErrStateConflict(detail string) *AppError {
	return New("SUB_002", fmt.Sprintf("State conflict: %s", detail), http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("SUB_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrSubscriptionExists guards the one-non-terminal-subscription-per-owner invariant.
func ErrSubscriptionExists() *AppError {
	return New("SUB_004", "Owner already has an active subscription", http.StatusConflict)
}

func ErrUnknownPlan(planID string) *AppError {
	return New("SUB_005", fmt.Sprintf("Unknown plan: %s", planID), http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// IsRetryable reports whether the scheduler may retry the failed operation.
// Unknown errors are not retried.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable
	}
	return false
}

// IsCode reports whether err carries the given application error code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
