package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Location sources.
const (
	SourceIP      = "ip"
	SourceAddress = "address"
	SourceFixed   = "fixed"
	SourceNone    = "none"
)

// Location permission modes.
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
	PermissionPrompt  = "prompt"
)

type AppConfig struct {
	Port string `validate:"required,numeric"`

	// HTTPTimeout bounds outbound calls. Zero keeps the transport default.
	HTTPTimeout time.Duration `validate:"gte=0"`

	// RefreshInterval re-runs the fetch cycle periodically. Zero disables it.
	RefreshInterval time.Duration `validate:"gte=0"`

	ForecastURL  string `validate:"omitempty,url"`
	GeocodingURL string `validate:"omitempty,url"`
	UserAgent    string `validate:"required"`

	LocationSource     string `validate:"oneof=ip address fixed none"`
	LocationPermission string `validate:"oneof=granted denied prompt"`
	IPLookupURL        string `validate:"omitempty,url"`

	// Fixed position, used when LocationSource is "fixed".
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`

	// Address geocoding, used when LocationSource is "address".
	GoogleAPIKey   string `validate:"required_if=LocationSource address"`
	AddressCity    string
	AddressState   string
	AddressCountry string

	// FontPath is a TrueType font for the PNG renderer (optional).
	FontPath string

	AppInsightsKey string
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "0s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	refresh, err := getenvDuration("REFRESH_INTERVAL", "0s")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	cfg.ForecastURL = os.Getenv("FORECAST_URL")
	cfg.GeocodingURL = os.Getenv("GEOCODING_URL")
	cfg.UserAgent = getenvDefault("USER_AGENT", "weather-dashboard/1.0")

	cfg.LocationSource = strings.ToLower(getenvDefault("LOCATION_SOURCE", SourceIP))
	cfg.LocationPermission = strings.ToLower(getenvDefault("LOCATION_PERMISSION", PermissionGranted))
	cfg.IPLookupURL = os.Getenv("IP_LOOKUP_URL")

	cfg.Latitude, err = getenvFloat("LOCATION_LATITUDE", 0)
	if err != nil {
		return nil, err
	}
	cfg.Longitude, err = getenvFloat("LOCATION_LONGITUDE", 0)
	if err != nil {
		return nil, err
	}

	cfg.GoogleAPIKey = os.Getenv("GOOGLE_GEOCODING_API_KEY")
	cfg.AddressCity = os.Getenv("LOCATION_CITY")
	cfg.AddressState = os.Getenv("LOCATION_STATE")
	cfg.AddressCountry = os.Getenv("LOCATION_COUNTRY")

	cfg.FontPath = os.Getenv("FONT_PATH")
	cfg.AppInsightsKey = os.Getenv("APPINSIGHTS_INSTRUMENTATION_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.LocationSource == SourceFixed && c.Latitude == 0 && c.Longitude == 0 {
		return fmt.Errorf("invalid configuration: LOCATION_SOURCE=fixed requires LOCATION_LATITUDE and LOCATION_LONGITUDE")
	}
	if c.LocationSource == SourceAddress && c.AddressCity == "" && c.AddressCountry == "" {
		return fmt.Errorf("invalid configuration: LOCATION_SOURCE=address requires LOCATION_CITY or LOCATION_COUNTRY")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
