package steam

import (
	"errors"
	"fmt"
)

// Common errors. Every *APIError matches exactly one of them with errors.Is.
var (
	// ErrFailedRequest groups failures where Steam never produced usable data:
	// transport problems, timeouts and non-200 responses.
	ErrFailedRequest = errors.New("steam request failed")
	// ErrNoData groups successful calls whose payload was absent or unreadable.
	ErrNoData = errors.New("steam returned no usable data")
)

const (
	msgUnauthorized     = "Unauthorized. Either you have used an invalid API key, or the data you wanted to access is private"
	msgRejected         = "Steam could not process your request. Double-check your provided parameters (Steam ID, app ID, ...)."
	msgTransportFailure = "Something went wrong with your request"
	msgTimeout          = "Steam did not answer in time"
	msgUnexpectedSchema = "Steam answered with data in an unexpected format"
	msgEmptyOrPrivate   = "The data you requested is either private or empty"
)

// Kind classifies an APIError
type Kind int

const (
	// KindUnauthorized is a 401: bad API key or a private resource, Steam does not say which
	KindUnauthorized Kind = iota + 1
	// KindRejected is any other non-200 status
	KindRejected
	// KindTransportFailure means no status was obtained (DNS, TLS, reset, ...)
	KindTransportFailure
	// KindTimeout means the request deadline passed before Steam answered
	KindTimeout
	// KindUnexpectedSchema means the body did not match the expected wire shape
	KindUnexpectedSchema
	// KindEmptyOrPrivate means the payload was absent or held nothing
	KindEmptyOrPrivate
)

// String returns the stable name of a Kind
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindRejected:
		return "rejected"
	case KindTransportFailure:
		return "transport_failure"
	case KindTimeout:
		return "timeout"
	case KindUnexpectedSchema:
		return "unexpected_schema"
	case KindEmptyOrPrivate:
		return "empty_or_private"
	default:
		return "unknown"
	}
}

// APIError is the only error type returned by Client methods
type APIError struct {
	Kind       Kind
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("steam API error (%s): status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("steam API error (%s): %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the group sentinel for this error's kind
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrFailedRequest:
		return e.IsFailedRequest()
	case ErrNoData:
		return e.IsNoData()
	}
	return false
}

// IsUnauthorized checks if the error is a 401 from Steam
func (e *APIError) IsUnauthorized() bool {
	return e.Kind == KindUnauthorized
}

// IsFailedRequest checks if the request itself failed
func (e *APIError) IsFailedRequest() bool {
	switch e.Kind {
	case KindUnauthorized, KindRejected, KindTransportFailure, KindTimeout:
		return true
	}
	return false
}

// IsNoData checks if the request succeeded but carried nothing usable
func (e *APIError) IsNoData() bool {
	return e.Kind == KindUnexpectedSchema || e.Kind == KindEmptyOrPrivate
}

// KindOf extracts the Kind from err if it wraps an *APIError
func KindOf(err error) (Kind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}
