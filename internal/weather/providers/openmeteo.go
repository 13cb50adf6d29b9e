package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	openMeteoTimeLayout   = "2006-01-02T15:04"
	msgIncompleteForecast = "Incomplete forecast data"
)

var (
	openMeteoCurrentFields = []string{
		"temperature_2m",
		"apparent_temperature",
		"precipitation",
		"weather_code",
		"is_day",
	}
	openMeteoDailyFields = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"precipitation_sum",
		"precipitation_probability_max",
	}
)

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoPayload struct {
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utc_offset_seconds"`
	Current          struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		IsDay               int     `json:"is_day"`
	} `json:"current"`
	Daily struct {
		Time                        []string   `json:"time"`
		WeatherCode                 []*int     `json:"weather_code"`
		TemperatureMax              []*float64 `json:"temperature_2m_max"`
		TemperatureMin              []*float64 `json:"temperature_2m_min"`
		PrecipitationSum            []*float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, coords weather.Coordinates) (weather.Forecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
		values.Set("current", strings.Join(openMeteoCurrentFields, ","))
		values.Set("daily", strings.Join(openMeteoDailyFields, ","))
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	body, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, classify(err, openMeteoReason)
	}

	var payload openMeteoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Forecast{}, weather.NewAPIError(weather.MsgForecastFailed, fmt.Errorf("decode forecast: %w", err))
	}

	daily, err := decodeDaily(payload)
	if err != nil {
		return weather.Forecast{}, weather.NewAPIError(msgIncompleteForecast, err)
	}
	if n := daily.Len(); n < weather.ForecastDays {
		return weather.Forecast{}, weather.NewAPIError(msgIncompleteForecast,
			fmt.Errorf("daily series length %d, want equal lengths of at least %d", n, weather.ForecastDays))
	}

	loc := forecastLocation(payload.Timezone, payload.UTCOffsetSeconds)
	ts, err := time.ParseInLocation(openMeteoTimeLayout, payload.Current.Time, loc)
	if err != nil {
		ts = time.Time{}
	}

	return weather.Forecast{
		Timezone: payload.Timezone,
		Current: weather.CurrentConditions{
			Time:                ts,
			Temperature:         payload.Current.Temperature,
			ApparentTemperature: payload.Current.ApparentTemperature,
			Precipitation:       payload.Current.Precipitation,
			WeatherCode:         payload.Current.WeatherCode,
			IsDay:               payload.Current.IsDay == 1,
		},
		Daily: daily,
	}, nil
}

// decodeDaily rejects a null among the displayed days. Nulls after them are
// never shown and decode as zero.
func decodeDaily(payload openMeteoPayload) (weather.DailyForecast, error) {
	d := payload.Daily
	codes, err := nonNull("weather_code", d.WeatherCode)
	if err != nil {
		return weather.DailyForecast{}, err
	}
	maxT, err := nonNull("temperature_2m_max", d.TemperatureMax)
	if err != nil {
		return weather.DailyForecast{}, err
	}
	minT, err := nonNull("temperature_2m_min", d.TemperatureMin)
	if err != nil {
		return weather.DailyForecast{}, err
	}
	sums, err := nonNull("precipitation_sum", d.PrecipitationSum)
	if err != nil {
		return weather.DailyForecast{}, err
	}
	probs, err := nonNull("precipitation_probability_max", d.PrecipitationProbabilityMax)
	if err != nil {
		return weather.DailyForecast{}, err
	}
	return weather.DailyForecast{
		Dates:                       d.Time,
		WeatherCodes:                codes,
		TempMax:                     maxT,
		TempMin:                     minT,
		PrecipitationSum:            sums,
		PrecipitationProbabilityMax: probs,
	}, nil
}

func nonNull[T any](field string, series []*T) ([]T, error) {
	out := make([]T, len(series))
	for i, v := range series {
		if v == nil {
			if i < weather.ForecastDays {
				return nil, fmt.Errorf("daily %s[%d] is null", field, i)
			}
			continue
		}
		out[i] = *v
	}
	return out, nil
}

// openMeteoReason pulls "reason" out of an Open-Meteo error body.
func openMeteoReason(body []byte) string {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Reason != "" {
		return payload.Reason
	}
	return weather.MsgForecastFailed
}

func forecastLocation(tz string, offset int) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if offset != 0 {
		return time.FixedZone(tz, offset)
	}
	return time.UTC
}
