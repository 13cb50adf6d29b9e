package weather

import (
	"time"
)

// ForecastDays is the number of daily entries the dashboard displays.
const ForecastDays = 7

// Coordinates is a single position fix produced once per fetch cycle.
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// CurrentConditions is the "current" block of a forecast response.
type CurrentConditions struct {
	Time                time.Time `json:"time"`
	Temperature         float64   `json:"temperatureC"`
	ApparentTemperature float64   `json:"apparentTemperatureC"`
	Precipitation       float64   `json:"precipitationMm"`
	WeatherCode         int       `json:"weatherCode"`
	IsDay               bool      `json:"isDay"`
}

// DailyForecast holds parallel per-day series. Index i across every slice
// describes the same day.
type DailyForecast struct {
	Dates                       []string  `json:"dates"`
	WeatherCodes                []int     `json:"weatherCodes"`
	TempMax                     []float64 `json:"temperatureMaxC"`
	TempMin                     []float64 `json:"temperatureMinC"`
	PrecipitationSum            []float64 `json:"precipitationSumMm"`
	PrecipitationProbabilityMax []float64 `json:"precipitationProbabilityMax"`
}

// Len returns the length shared by all series, or -1 if they disagree.
func (d DailyForecast) Len() int {
	n := len(d.Dates)
	for _, l := range []int{
		len(d.WeatherCodes),
		len(d.TempMax),
		len(d.TempMin),
		len(d.PrecipitationSum),
		len(d.PrecipitationProbabilityMax),
	} {
		if l != n {
			return -1
		}
	}
	return n
}

// Day is one index-aligned row of a DailyForecast.
type Day struct {
	Date                        string
	WeatherCode                 int
	TempMax                     float64
	TempMin                     float64
	PrecipitationSum            float64
	PrecipitationProbabilityMax float64
}

// Days returns at most limit rows starting from the first day.
func (d DailyForecast) Days(limit int) []Day {
	n := d.Len()
	if n < 0 {
		return nil
	}
	if limit >= 0 && n > limit {
		n = limit
	}
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, Day{
			Date:                        d.Dates[i],
			WeatherCode:                 d.WeatherCodes[i],
			TempMax:                     d.TempMax[i],
			TempMin:                     d.TempMin[i],
			PrecipitationSum:            d.PrecipitationSum[i],
			PrecipitationProbabilityMax: d.PrecipitationProbabilityMax[i],
		})
	}
	return days
}

// Forecast is what the forecast provider returns: everything in a Snapshot
// except the place name.
type Forecast struct {
	Timezone string            `json:"timezone"`
	Current  CurrentConditions `json:"current"`
	Daily    DailyForecast     `json:"daily"`
}

// Snapshot combines a forecast with the resolved location name. It is only
// built once both outbound calls have succeeded.
type Snapshot struct {
	Current      CurrentConditions `json:"current"`
	Daily        DailyForecast     `json:"daily"`
	LocationName string            `json:"locationName"`
}

// NewSnapshot assembles a Snapshot from the two call results.
func NewSnapshot(f Forecast, locationName string) Snapshot {
	return Snapshot{
		Current:      f.Current,
		Daily:        f.Daily,
		LocationName: locationName,
	}
}
