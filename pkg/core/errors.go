package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of an exchange error.
type ErrorType int

// Error type constants categorize errors for retry classification.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfig indicates invalid client configuration. Never retried.
	ErrorTypeConfig
	// ErrorTypeSigning indicates credentials were present but unusable.
	// Treated as configuration-class: the call fails fast rather than
	// going out unsigned.
	ErrorTypeSigning
	// ErrorTypeNetwork indicates a transport-level failure.
	ErrorTypeNetwork
	// ErrorTypeTimeout indicates the attempt exceeded its deadline.
	ErrorTypeTimeout
	// ErrorTypeDecode indicates the response body could not be parsed as JSON.
	ErrorTypeDecode
	// ErrorTypeHTTP indicates a non-2xx status outside the terminal denylist.
	ErrorTypeHTTP
	// ErrorTypeRetryExhausted indicates the retry budget was spent without
	// obtaining a usable response.
	ErrorTypeRetryExhausted
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIG",
		"SIGNING",
		"NETWORK",
		"TIMEOUT",
		"DECODE",
		"HTTP",
		"RETRY_EXHAUSTED",
	}[t]
}

// Sentinel errors for common conditions.
var (
	// ErrUnsupportedExchange is returned at construction for an unknown
	// exchange identifier.
	ErrUnsupportedExchange = errors.New("unsupported exchange")
	// ErrUnknownOperation is returned when an operation name is not in the
	// exchange's endpoint registry.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrMissingSecret is returned when signing is required but the
	// configured credentials carry no secret.
	ErrMissingSecret = errors.New("api key configured without a usable secret")
	// ErrRetryExhausted is returned after the last failed attempt.
	ErrRetryExhausted = errors.New("retry limit hit")
	// ErrClientClosed is returned when using a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrCircuitBreakerOpen is returned when the circuit breaker rejects a call.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	// ErrMissingPathParam is returned when a path template placeholder has
	// no matching parameter.
	ErrMissingPathParam = errors.New("missing path parameter")
)

// ExchangeError represents a structured failure while calling an exchange.
type ExchangeError struct {
	// Type categorizes the error for retry classification.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status, zero when the failure happened
	// before a response was received.
	StatusCode int `json:"status_code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Exchange identifies which exchange the call targeted.
	Exchange string `json:"exchange"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`

	err error
}

// Error implements the error interface.
func (e *ExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %s (%d): %s", e.Exchange, e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Exchange, e.Type, e.Message)
}

// Unwrap exposes the wrapped cause, if any.
func (e *ExchangeError) Unwrap() error {
	return e.err
}

// NewExchangeError creates an ExchangeError with the current timestamp.
func NewExchangeError(exchange string, errorType ErrorType, statusCode int, message string) *ExchangeError {
	return &ExchangeError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		Exchange:   exchange,
		Timestamp:  time.Now(),
	}
}

// WrapExchangeError creates an ExchangeError around an underlying cause.
func WrapExchangeError(exchange string, errorType ErrorType, err error) *ExchangeError {
	return &ExchangeError{
		Type:      errorType,
		Message:   err.Error(),
		Exchange:  exchange,
		Timestamp: time.Now(),
		err:       err,
	}
}

// IsRetryable reports whether another attempt may succeed. Configuration
// and signing failures are permanent, everything that happened on the wire
// or while decoding is eligible for a retry.
func IsRetryable(err error) bool {
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		switch exErr.Type {
		case ErrorTypeNetwork, ErrorTypeTimeout, ErrorTypeDecode, ErrorTypeHTTP:
			return true
		default:
			return false
		}
	}
	return false
}

// IsConfigError returns true for configuration-class failures, including
// signing errors.
func IsConfigError(err error) bool {
	if errors.Is(err, ErrUnsupportedExchange) || errors.Is(err, ErrMissingSecret) {
		return true
	}
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr.Type == ErrorTypeConfig || exErr.Type == ErrorTypeSigning
	}
	return false
}

// IsRetryExhausted returns true when the retry budget was spent.
func IsRetryExhausted(err error) bool {
	if errors.Is(err, ErrRetryExhausted) {
		return true
	}
	var exErr *ExchangeError
	if errors.As(err, &exErr) {
		return exErr.Type == ErrorTypeRetryExhausted
	}
	return false
}
