package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Fixed reports a configured position.
type Fixed struct {
	Coords weather.Coordinates
}

func (f Fixed) Name() string { return "fixed" }

func (f Fixed) Position(context.Context) (weather.Coordinates, error) {
	return f.Coords, nil
}

// IPSource looks the position up from the caller's public IP address using
// an ip-api.com compatible endpoint.
type IPSource struct {
	client *resty.Client
}

func NewIPSource(baseURL string, timeout time.Duration) *IPSource {
	if baseURL == "" {
		baseURL = "http://ip-api.com"
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &IPSource{client: client}
}

func (s *IPSource) Name() string { return "ip" }

type ipLookup struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (s *IPSource) Position(ctx context.Context) (weather.Coordinates, error) {
	var out ipLookup
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("fields", "status,message,lat,lon").
		SetResult(&out).
		Get("/json/")
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("ip lookup: %w", err)
	}
	if resp.IsError() {
		return weather.Coordinates{}, fmt.Errorf("ip lookup: unexpected status %d", resp.StatusCode())
	}
	if out.Status != "success" {
		return weather.Coordinates{}, fmt.Errorf("ip lookup: %s", out.Message)
	}
	return weather.Coordinates{Latitude: out.Lat, Longitude: out.Lon}, nil
}

// AddressSource geocodes a configured postal address with the Google
// Geocoding API.
type AddressSource struct {
	address geocoder.Address
	lookup  func(geocoder.Address) (geocoder.Location, error)
}

// NewAddressSource sets the package-level Google API key used by the
// geocoder library.
func NewAddressSource(apiKey, city, state, country string) *AddressSource {
	geocoder.ApiKey = apiKey
	return &AddressSource{
		address: geocoder.Address{
			City:    city,
			State:   state,
			Country: country,
		},
		lookup: geocoder.Geocoding,
	}
}

func (s *AddressSource) Name() string { return "address" }

func (s *AddressSource) Position(context.Context) (weather.Coordinates, error) {
	if s.address.City == "" && s.address.Country == "" {
		return weather.Coordinates{}, errors.New("no address configured")
	}
	loc, err := s.lookup(s.address)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("geocode address: %w", err)
	}
	return weather.Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}
