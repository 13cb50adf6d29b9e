package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	// PlaceUnknown is shown when the geocoder reports an error for the position.
	PlaceUnknown = "Unknown Location"
	// PlaceFallback is shown when the geocoder answers but no address field is usable.
	PlaceFallback = "Your Location"

	nominatimAcceptLanguage = "en-US,en;q=0.9"
)

// NominatimGeocoder implements weather.PlaceNamer with OpenStreetMap Nominatim.
type NominatimGeocoder struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewNominatimGeocoder creates a reverse geocoder. Nominatim's usage policy
// requires an identifying User-Agent.
func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org/reverse"
	}
	return &NominatimGeocoder{
		name:    "nominatim",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuitBreaker("nominatim"),
	}
}

func (g *NominatimGeocoder) Name() string {
	return g.name
}

// Address is the subset of a Nominatim address used for the display name.
type Address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	County  string `json:"county"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type nominatimPayload struct {
	Error   string  `json:"error"`
	Address Address `json:"address"`
}

// PlaceName picks the most specific populated field of an address.
func PlaceName(addr Address) string {
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.County, addr.State, addr.Country} {
		if candidate != "" {
			return candidate
		}
	}
	return PlaceFallback
}

func (g *NominatimGeocoder) FetchLocationName(ctx context.Context, coords weather.Coordinates) (string, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
		values.Set("format", "json")
		values.Set("zoom", "10")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept-Language", nominatimAcceptLanguage)
		return req, nil
	}

	body, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return "", classify(err, func([]byte) string { return weather.MsgLocationFailed })
	}

	var payload nominatimPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", weather.NewAPIError(weather.MsgLocationFailed, fmt.Errorf("decode reverse geocoding: %w", err))
	}
	if payload.Error != "" {
		return PlaceUnknown, nil
	}
	return PlaceName(payload.Address), nil
}
