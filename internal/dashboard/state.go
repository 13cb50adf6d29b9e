package dashboard

import (
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Status tags which variant a ViewState is.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ViewState is the single source of truth for rendering. Snapshot is set
// only for StatusSuccess and Message only for StatusError. Values are built
// with the constructors below and never modified afterwards.
type ViewState struct {
	Status   Status            `json:"status"`
	Snapshot *weather.Snapshot `json:"snapshot,omitempty"`
	Message  string            `json:"message,omitempty"`
}

func Idle() ViewState {
	return ViewState{Status: StatusIdle}
}

func Loading() ViewState {
	return ViewState{Status: StatusLoading}
}

func Succeeded(s weather.Snapshot) ViewState {
	return ViewState{Status: StatusSuccess, Snapshot: &s}
}

func Failed(message string) ViewState {
	if message == "" {
		message = "An unexpected error occurred."
	}
	return ViewState{Status: StatusError, Message: message}
}

// CanTrigger reports whether the start/retry control should be enabled.
func (v ViewState) CanTrigger() bool {
	return v.Status != StatusLoading
}
