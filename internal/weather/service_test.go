package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rendezvous lets two fakes prove they were in flight at the same time.
type rendezvous struct {
	arrived chan struct{}
}

func newRendezvous() *rendezvous {
	return &rendezvous{arrived: make(chan struct{}, 2)}
}

func (r *rendezvous) meet(t *testing.T) {
	r.arrived <- struct{}{}
	deadline := time.After(2 * time.Second)
	for len(r.arrived) < 2 {
		select {
		case <-deadline:
			t.Error("calls were not issued concurrently")
			return
		case <-time.After(time.Millisecond):
		}
	}
}

type fakeForecasts struct {
	t     *testing.T
	meet  *rendezvous
	calls atomic.Int32
	out   Forecast
	err   error
}

func (f *fakeForecasts) Name() string { return "fake-forecast" }

func (f *fakeForecasts) FetchForecast(ctx context.Context, c Coordinates) (Forecast, error) {
	f.calls.Add(1)
	if f.meet != nil {
		f.meet.meet(f.t)
	}
	return f.out, f.err
}

type fakePlaces struct {
	t     *testing.T
	meet  *rendezvous
	calls atomic.Int32
	name  string
	err   error
}

func (f *fakePlaces) Name() string { return "fake-places" }

func (f *fakePlaces) FetchLocationName(ctx context.Context, c Coordinates) (string, error) {
	f.calls.Add(1)
	if f.meet != nil {
		f.meet.meet(f.t)
	}
	return f.name, f.err
}

func TestFetchSnapshotSuccess(t *testing.T) {
	meet := newRendezvous()
	fc := &fakeForecasts{t: t, meet: meet, out: Forecast{Current: CurrentConditions{WeatherCode: 3}, Daily: tenDays()}}
	pl := &fakePlaces{t: t, meet: meet, name: "Pune"}

	snap, err := NewService(fc, pl).FetchSnapshot(context.Background(), Coordinates{Latitude: 18.5, Longitude: 73.8})
	require.NoError(t, err)
	assert.Equal(t, "Pune", snap.LocationName)
	assert.Equal(t, 3, snap.Current.WeatherCode)
	assert.Equal(t, 10, snap.Daily.Len())
}

func TestFetchSnapshotForecastFailsGeocodingSucceeds(t *testing.T) {
	meet := newRendezvous()
	fc := &fakeForecasts{t: t, meet: meet, err: NewAPIError("bad request", nil)}
	pl := &fakePlaces{t: t, meet: meet, name: "Pune"}

	_, err := NewService(fc, pl).FetchSnapshot(context.Background(), Coordinates{})
	require.Error(t, err)
	assert.Equal(t, "bad request", UserMessage(err))
	assert.EqualValues(t, 1, fc.calls.Load())
	assert.EqualValues(t, 1, pl.calls.Load())
}

func TestFetchSnapshotForecastErrorWins(t *testing.T) {
	for i := 0; i < 20; i++ {
		fc := &fakeForecasts{err: NewAPIError("forecast down", nil)}
		pl := &fakePlaces{err: NewError(KindNetwork, errors.New("dns"))}

		_, err := NewService(fc, pl).FetchSnapshot(context.Background(), Coordinates{})
		require.Error(t, err)
		assert.Equal(t, "forecast down", UserMessage(err))
	}
}

func TestFetchSnapshotGeocodingFailure(t *testing.T) {
	fc := &fakeForecasts{out: Forecast{Daily: tenDays()}}
	pl := &fakePlaces{err: NewError(KindNetwork, errors.New("reset"))}

	_, err := NewService(fc, pl).FetchSnapshot(context.Background(), Coordinates{})
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestFetchSnapshotMissingProvider(t *testing.T) {
	_, err := NewService(nil, &fakePlaces{}).FetchSnapshot(context.Background(), Coordinates{})
	assert.Error(t, err)
}
