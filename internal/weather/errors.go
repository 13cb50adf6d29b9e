package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch cycle failed.
type ErrorKind string

const (
	KindUnsupported         ErrorKind = "unsupported"
	KindPermissionDenied    ErrorKind = "permission_denied"
	KindPositionUnavailable ErrorKind = "position_unavailable"
	KindNetwork             ErrorKind = "network"
	KindAPI                 ErrorKind = "api"
)

// User-facing messages, one per kind.
const (
	MsgUnsupported         = "Geolocation is not supported on this device."
	MsgPermissionDenied    = "Location access was denied. Please enable it in your browser or system location settings to use this app."
	MsgPositionUnavailable = "An error occurred while retrieving your location."
	MsgNetwork             = "Unable to reach the weather service. Please check your connection."
	MsgUnknown             = "An unknown error occurred."

	MsgForecastFailed = "Failed to fetch weather data"
	MsgLocationFailed = "Failed to fetch location name"
)

// Error is the classified failure surfaced to the dashboard.
// Reason is only shown for KindAPI; Err keeps the underlying cause for logs.
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message(), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the single string shown to the user for this failure.
func (e *Error) Message() string {
	switch e.Kind {
	case KindUnsupported:
		return MsgUnsupported
	case KindPermissionDenied:
		return MsgPermissionDenied
	case KindPositionUnavailable:
		return MsgPositionUnavailable
	case KindNetwork:
		return MsgNetwork
	case KindAPI:
		if e.Reason != "" {
			return e.Reason
		}
		return MsgForecastFailed
	default:
		return MsgUnknown
	}
}

// NewError builds a classified error wrapping cause.
func NewError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// NewAPIError builds a KindAPI error carrying the service's reason.
func NewAPIError(reason string, cause error) *Error {
	return &Error{Kind: KindAPI, Reason: reason, Err: cause}
}

// UserMessage maps any error to the text the error view shows.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Message()
	}
	return MsgUnknown
}

// KindOf reports the classified kind of err, or "" if it is not an *Error.
func KindOf(err error) ErrorKind {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return ""
}
