package domain

import (
	"errors"
	"strconv"
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// NetworkError represents a transport-level error that may be retriable.
// Recovery is owned by the streaming client; the tap only reports these.
type NetworkError struct {
	Op        string // Operation that failed (e.g., "connect", "read")
	Err       error  // Underlying error
	Retriable bool   // Whether this error is retriable
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// NewFatalNetworkError creates a non-retriable network error
func NewFatalNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: false}
}

// AuthConfigError represents malformed or missing credentials.
// Fatal and never retriable: it is surfaced before any network activity,
// remote validation only happens at connect time.
type AuthConfigError struct {
	Field string
	Err   error
}

func (e *AuthConfigError) Error() string {
	return "auth config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *AuthConfigError) IsRetriable() bool {
	return false
}

func (e *AuthConfigError) Unwrap() error {
	return e.Err
}

// SubscriptionError represents a failed subscribe or mode-change request.
// Non-fatal: the tap logs it and keeps the connection alive.
type SubscriptionError struct {
	Op     string   // "subscribe" or "set_mode"
	Tokens []uint32 // Instrument tokens in the failed request
	Err    error
}

func (e *SubscriptionError) Error() string {
	return e.Op + " failed for " + strconv.Itoa(len(e.Tokens)) + " instrument(s): " + e.Err.Error()
}

func (e *SubscriptionError) IsRetriable() bool {
	return false
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

var (
	// ErrConnectionFailed is returned when the websocket connection fails. It's usually retriable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidMode is returned when a delivery mode is not one of ltp/quote/full. Not retriable.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrNoInstruments is returned when configuration names no instrument tokens
	ErrNoInstruments = errors.New("no instruments configured")

	// ErrConfigNotFound is returned when the configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
