package location

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

type countingSource struct {
	calls  int
	coords weather.Coordinates
	err    error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Position(context.Context) (weather.Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

func TestLocateWithoutSourceIsUnsupported(t *testing.T) {
	_, err := NewAcquirer(nil, nil).Locate(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.KindUnsupported, weather.KindOf(err))
}

func TestLocatePermissionDenied(t *testing.T) {
	src := &countingSource{coords: weather.Coordinates{Latitude: 1, Longitude: 2}}
	_, err := NewAcquirer(src, Denied{}).Locate(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.KindPermissionDenied, weather.KindOf(err))
	assert.Contains(t, weather.UserMessage(err), "settings")
	assert.Zero(t, src.calls)
}

type erroringConsent struct{ err error }

func (c erroringConsent) Request(context.Context) (bool, error) { return false, c.err }

func TestLocateConsentErrors(t *testing.T) {
	src := &countingSource{}
	_, err := NewAcquirer(src, erroringConsent{err: ErrDenied}).Locate(context.Background())
	assert.Equal(t, weather.KindPermissionDenied, weather.KindOf(err))

	_, err = NewAcquirer(src, erroringConsent{err: errors.New("tty closed")}).Locate(context.Background())
	assert.Equal(t, weather.KindPositionUnavailable, weather.KindOf(err))
}

func TestLocateSourceFailure(t *testing.T) {
	src := &countingSource{err: errors.New("no fix")}
	_, err := NewAcquirer(src, Granted{}).Locate(context.Background())
	require.Error(t, err)
	assert.Equal(t, weather.KindPositionUnavailable, weather.KindOf(err))
	assert.Equal(t, weather.MsgPositionUnavailable, weather.UserMessage(err))
}

func TestLocateRejectsOutOfRangePosition(t *testing.T) {
	src := &countingSource{coords: weather.Coordinates{Latitude: 123, Longitude: 2}}
	_, err := NewAcquirer(src, nil).Locate(context.Background())
	assert.Equal(t, weather.KindPositionUnavailable, weather.KindOf(err))
}

func TestLocateQueriesSourceEveryTime(t *testing.T) {
	src := &countingSource{coords: weather.Coordinates{Latitude: 18.52, Longitude: 73.86}}
	a := NewAcquirer(src, nil)

	for i := 0; i < 3; i++ {
		coords, err := a.Locate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, src.coords, coords)
	}
	assert.Equal(t, 3, src.calls)
}

func TestPrompt(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		" yes ": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"maybe": false,
	}
	for input, want := range cases {
		var out bytes.Buffer
		ok, err := NewPrompt(strings.NewReader(input), &out).Request(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, ok, "input %q", input)
		assert.Contains(t, out.String(), "[y/N]")
	}
}

func TestIPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","lat":18.52,"lon":73.86}`))
	}))
	defer srv.Close()

	coords, err := NewIPSource(srv.URL, 0).Position(context.Background())
	require.NoError(t, err)
	assert.Equal(t, weather.Coordinates{Latitude: 18.52, Longitude: 73.86}, coords)
}

func TestIPSourceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	_, err := NewIPSource(srv.URL, 0).Position(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private range")
}

func TestAddressSource(t *testing.T) {
	src := NewAddressSource("key", "Pune", "Maharashtra", "India")
	assert.Equal(t, "key", geocoder.ApiKey)

	var asked geocoder.Address
	src.lookup = func(a geocoder.Address) (geocoder.Location, error) {
		asked = a
		return geocoder.Location{Latitude: 18.52, Longitude: 73.86}, nil
	}

	coords, err := src.Position(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Pune", asked.City)
	assert.Equal(t, weather.Coordinates{Latitude: 18.52, Longitude: 73.86}, coords)

	src.lookup = func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, errors.New("ZERO_RESULTS")
	}
	_, err = src.Position(context.Background())
	assert.Error(t, err)
}

func TestFixedSource(t *testing.T) {
	want := weather.Coordinates{Latitude: -33.86, Longitude: 151.2}
	got, err := NewAcquirer(Fixed{Coords: want}, Granted{}).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
