package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Service runs the forecast and place-name lookups for a position.
type Service struct {
	forecasts ForecastProvider
	places    PlaceNamer
}

// NewService creates a new Service.
func NewService(forecasts ForecastProvider, places PlaceNamer) *Service {
	return &Service{
		forecasts: forecasts,
		places:    places,
	}
}

// FetchSnapshot issues both lookups concurrently and waits for both to
// settle. A forecast failure is reported in preference to a geocoding
// failure; no partial snapshot is ever returned.
func (s *Service) FetchSnapshot(ctx context.Context, coords Coordinates) (Snapshot, error) {
	if s.forecasts == nil || s.places == nil {
		return Snapshot{}, fmt.Errorf("weather service is missing a provider")
	}

	var (
		wg          sync.WaitGroup
		forecast    Forecast
		forecastErr error
		name        string
		nameErr     error
	)

	log.Printf("DEBUG: [%s] fetching %s and %s for %.4f,%.4f",
		CycleID(ctx), s.forecasts.Name(), s.places.Name(), coords.Latitude, coords.Longitude)

	wg.Add(2)
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.forecasts.FetchForecast(ctx, coords)
	}()
	go func() {
		defer wg.Done()
		name, nameErr = s.places.FetchLocationName(ctx, coords)
	}()
	wg.Wait()

	if forecastErr != nil {
		log.Printf("ERROR: [%s] %s forecast failed: %v", CycleID(ctx), s.forecasts.Name(), forecastErr)
	}
	if nameErr != nil {
		log.Printf("ERROR: [%s] %s reverse geocoding failed: %v", CycleID(ctx), s.places.Name(), nameErr)
	}

	switch {
	case forecastErr != nil:
		return Snapshot{}, forecastErr
	case nameErr != nil:
		return Snapshot{}, nameErr
	}

	return NewSnapshot(forecast, name), nil
}
