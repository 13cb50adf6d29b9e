// Package telemetry reports finished fetch cycles to Application Insights.
package telemetry

import (
	"time"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

// Reporter sends one event per terminal dashboard state.
type Reporter struct {
	client appinsights.TelemetryClient
}

// New returns nil when no instrumentation key is configured.
func New(instrumentationKey string) *Reporter {
	if instrumentationKey == "" {
		return nil
	}
	telemetryConfig := appinsights.NewTelemetryConfiguration(instrumentationKey)
	telemetryConfig.MaxBatchSize = 1024
	telemetryConfig.MaxBatchInterval = 2 * time.Second

	client := appinsights.NewTelemetryClientFromConfig(telemetryConfig)
	client.Context().Tags.Cloud().SetRole("weather-dashboard")
	return NewWithClient(client)
}

func NewWithClient(client appinsights.TelemetryClient) *Reporter {
	return &Reporter{client: client}
}

// Observe is a dashboard.Listener. Idle and loading states are not reported.
func (r *Reporter) Observe(state dashboard.ViewState) {
	if r == nil {
		return
	}
	switch state.Status {
	case dashboard.StatusSuccess:
		e := appinsights.NewEventTelemetry("dashboard-success")
		if state.Snapshot != nil {
			e.Properties["location"] = state.Snapshot.LocationName
		}
		r.client.Track(e)
	case dashboard.StatusError:
		e := appinsights.NewEventTelemetry("dashboard-error")
		e.Properties["message"] = state.Message
		r.client.Track(e)
	}
}

// Close flushes pending telemetry, waiting at most timeout.
func (r *Reporter) Close(timeout time.Duration) {
	if r == nil {
		return
	}
	select {
	case <-r.client.Channel().Close(timeout):
	case <-time.After(timeout):
	}
}
