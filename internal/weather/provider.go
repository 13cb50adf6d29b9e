package weather

import (
	"context"
)

// ForecastProvider fetches current conditions and the daily series for a
// position (e.g. Open-Meteo).
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, coords Coordinates) (Forecast, error)
}

// PlaceNamer resolves a display name for a position (e.g. Nominatim).
type PlaceNamer interface {
	Name() string
	FetchLocationName(ctx context.Context, coords Coordinates) (string, error)
}
