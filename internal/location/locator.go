// Package location acquires the user's position for a fetch cycle.
package location

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Source is a position capability (IP lookup, address geocoding, fixed fix).
type Source interface {
	Name() string
	Position(ctx context.Context) (weather.Coordinates, error)
}

// Consent decides whether a position may be read for this request.
type Consent interface {
	Request(ctx context.Context) (bool, error)
}

// ErrDenied is wrapped by consent gates that refuse access.
var ErrDenied = errors.New("location permission denied")

var validate = validator.New()

// Acquirer is the single entry point the dashboard uses to get coordinates.
// It keeps no state between calls: every Locate asks for consent and reads
// the source again.
type Acquirer struct {
	source  Source
	consent Consent
}

// NewAcquirer builds an Acquirer. A nil source means the platform offers no
// location capability; a nil consent gate grants access.
func NewAcquirer(source Source, consent Consent) *Acquirer {
	if consent == nil {
		consent = Granted{}
	}
	return &Acquirer{
		source:  source,
		consent: consent,
	}
}

// Locate returns one coordinate pair or a classified *weather.Error.
func (a *Acquirer) Locate(ctx context.Context) (weather.Coordinates, error) {
	if a == nil || a.source == nil {
		return weather.Coordinates{}, weather.NewError(weather.KindUnsupported, nil)
	}

	ok, err := a.consent.Request(ctx)
	if err != nil {
		if errors.Is(err, ErrDenied) {
			return weather.Coordinates{}, weather.NewError(weather.KindPermissionDenied, err)
		}
		return weather.Coordinates{}, weather.NewError(weather.KindPositionUnavailable, fmt.Errorf("consent: %w", err))
	}
	if !ok {
		return weather.Coordinates{}, weather.NewError(weather.KindPermissionDenied, ErrDenied)
	}

	coords, err := a.source.Position(ctx)
	if err != nil {
		log.Printf("ERROR: [%s] location source %s failed: %v", weather.CycleID(ctx), a.source.Name(), err)
		return weather.Coordinates{}, weather.NewError(weather.KindPositionUnavailable, err)
	}
	if err := validate.Struct(coords); err != nil {
		return weather.Coordinates{}, weather.NewError(weather.KindPositionUnavailable, fmt.Errorf("invalid position from %s: %w", a.source.Name(), err))
	}

	log.Printf("DEBUG: [%s] location from %s: %.4f,%.4f", weather.CycleID(ctx), a.source.Name(), coords.Latitude, coords.Longitude)
	return coords, nil
}
