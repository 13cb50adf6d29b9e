package telemetry

import (
	"testing"
	"time"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// recordingClient keeps tracked items instead of sending them. Methods other
// than Track are not used by Reporter.Observe.
type recordingClient struct {
	appinsights.TelemetryClient
	tracked []appinsights.Telemetry
}

func (c *recordingClient) Track(item appinsights.Telemetry) {
	c.tracked = append(c.tracked, item)
}

func TestNewWithoutKeyIsNoop(t *testing.T) {
	r := New("")
	assert.Nil(t, r)

	assert.NotPanics(t, func() {
		r.Observe(dashboard.Failed("boom"))
		r.Close(time.Millisecond)
	})
}

func TestObserveTracksTerminalStates(t *testing.T) {
	client := &recordingClient{}
	r := NewWithClient(client)

	r.Observe(dashboard.Idle())
	r.Observe(dashboard.Loading())
	assert.Empty(t, client.tracked, "idle and loading are not reported")

	r.Observe(dashboard.Succeeded(weather.Snapshot{LocationName: "Pune"}))
	r.Observe(dashboard.Failed(weather.MsgNetwork))
	require.Len(t, client.tracked, 2)

	success, ok := client.tracked[0].(*appinsights.EventTelemetry)
	require.True(t, ok)
	assert.Equal(t, "dashboard-success", success.Name)
	assert.Equal(t, "Pune", success.Properties["location"])

	failure, ok := client.tracked[1].(*appinsights.EventTelemetry)
	require.True(t, ok)
	assert.Equal(t, "dashboard-error", failure.Name)
	assert.Equal(t, weather.MsgNetwork, failure.Properties["message"])
}
