package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func forecastBody(days int) map[string]any {
	daily := map[string]any{}
	var (
		dates []string
		codes []int
		maxT  []float64
		minT  []float64
		sums  []float64
		probs []float64
	)
	for i := 0; i < days; i++ {
		dates = append(dates, "2026-10-"+twoDigits(i+1))
		codes = append(codes, 61)
		maxT = append(maxT, 30.5)
		minT = append(minT, 21.2)
		sums = append(sums, 1.5)
		probs = append(probs, 80)
	}
	daily["time"] = dates
	daily["weather_code"] = codes
	daily["temperature_2m_max"] = maxT
	daily["temperature_2m_min"] = minT
	daily["precipitation_sum"] = sums
	daily["precipitation_probability_max"] = probs

	return map[string]any{
		"latitude":           18.52,
		"longitude":          73.86,
		"timezone":           "Asia/Kolkata",
		"utc_offset_seconds": 19800,
		"current": map[string]any{
			"time":                 "2026-10-19T14:30",
			"interval":             900,
			"temperature_2m":       29.4,
			"apparent_temperature": 32.1,
			"precipitation":        0.2,
			"weather_code":         2,
			"is_day":               1,
		},
		"daily": daily,
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestOpenMeteoFetchForecast(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_ = json.NewEncoder(w).Encode(forecastBody(10))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.Client(), srv.URL)
	ctx := weather.WithCycleID(context.Background(), "cycle-1")
	f, err := p.FetchForecast(ctx, weather.Coordinates{Latitude: 18.52, Longitude: 73.86})
	require.NoError(t, err)

	q := got.URL.Query()
	assert.Equal(t, "18.52", q.Get("latitude"))
	assert.Equal(t, "73.86", q.Get("longitude"))
	assert.Equal(t, "temperature_2m,apparent_temperature,precipitation,weather_code,is_day", q.Get("current"))
	assert.Equal(t, "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max", q.Get("daily"))
	assert.Equal(t, "auto", q.Get("timezone"))
	assert.Equal(t, "cycle-1", got.Header.Get("X-Request-ID"))

	assert.Equal(t, "Asia/Kolkata", f.Timezone)
	assert.Equal(t, 29.4, f.Current.Temperature)
	assert.Equal(t, 32.1, f.Current.ApparentTemperature)
	assert.Equal(t, 0.2, f.Current.Precipitation)
	assert.Equal(t, 2, f.Current.WeatherCode)
	assert.True(t, f.Current.IsDay)
	assert.Equal(t, 14, f.Current.Time.Hour())
	assert.Equal(t, 10, f.Daily.Len())
	assert.Len(t, f.Daily.Days(weather.ForecastDays), 7)
}

func TestOpenMeteoNightAndUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := forecastBody(7)
		cur := body["current"].(map[string]any)
		cur["is_day"] = 0
		cur["weather_code"] = 42
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	f, err := NewOpenMeteoProvider(srv.Client(), srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	require.NoError(t, err)
	assert.False(t, f.Current.IsDay)
	assert.Equal(t, 42, f.Current.WeatherCode)
}

func TestOpenMeteoAPIErrorReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°. Given: 91.0."}`))
	}))
	defer srv.Close()

	_, err := NewOpenMeteoProvider(srv.Client(), srv.URL).FetchForecast(context.Background(), weather.Coordinates{Latitude: 91})
	require.Error(t, err)
	assert.Equal(t, weather.KindAPI, weather.KindOf(err))
	assert.Equal(t, "Latitude must be in range of -90 to 90°. Given: 91.0.", weather.UserMessage(err))
}

func TestOpenMeteoAPIErrorWithoutReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := NewOpenMeteoProvider(srv.Client(), srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	assert.Equal(t, weather.KindAPI, weather.KindOf(err))
	assert.Equal(t, weather.MsgForecastFailed, weather.UserMessage(err))
}

func TestOpenMeteoShortOrRaggedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := forecastBody(7)
		daily := body["daily"].(map[string]any)
		daily["temperature_2m_min"] = []float64{1, 2, 3}
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	_, err := NewOpenMeteoProvider(srv.Client(), srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	assert.Equal(t, weather.KindAPI, weather.KindOf(err))
}

func TestOpenMeteoNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewOpenMeteoProvider(http.DefaultClient, url).FetchForecast(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	assert.Equal(t, weather.KindNetwork, weather.KindOf(err))
	assert.Equal(t, weather.MsgNetwork, weather.UserMessage(err))
}

func TestOpenMeteoNullDailyValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := forecastBody(7)
		daily := body["daily"].(map[string]any)
		daily["weather_code"] = []any{61, 61, nil, 61, 61, 61, 61}
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	_, err := NewOpenMeteoProvider(srv.Client(), srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	require.Error(t, err)
	assert.Equal(t, weather.KindAPI, weather.KindOf(err))
	assert.Equal(t, "Incomplete forecast data", weather.UserMessage(err))
}

func TestOpenMeteoNullAfterDisplayedDays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := forecastBody(8)
		daily := body["daily"].(map[string]any)
		daily["precipitation_probability_max"] = []any{80, 80, 80, 80, 80, 80, 80, nil}
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	f, err := NewOpenMeteoProvider(srv.Client(), srv.URL).FetchForecast(context.Background(), weather.Coordinates{})
	require.NoError(t, err)
	assert.Equal(t, 8, f.Daily.Len())
	assert.Equal(t, 80.0, f.Daily.PrecipitationProbabilityMax[6])
}
