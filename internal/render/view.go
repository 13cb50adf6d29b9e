// Package render turns a dashboard.ViewState into something a person can
// look at. Every function here is a pure function of the state.
package render

import (
	"math"
	"time"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// View is the presentation model shared by all renderers.
type View struct {
	Status     dashboard.Status   `json:"status"`
	Background weather.Background `json:"background"`
	Gradient   []string           `json:"gradient"`
	CanTrigger bool               `json:"canTrigger"`
	Message    string             `json:"message,omitempty"`
	Location   string             `json:"location,omitempty"`
	Current    *CurrentView       `json:"current,omitempty"`
	Days       []DayView          `json:"days,omitempty"`
}

type CurrentView struct {
	Temperature int                  `json:"temperature"`
	FeelsLike   int                  `json:"feelsLike"`
	Description string               `json:"description"`
	Icon        weather.IconCategory `json:"icon"`
	Glyph       string               `json:"glyph"`
	RainfallMM  float64              `json:"rainfallMm"`
	IsDay       bool                 `json:"isDay"`
}

type DayView struct {
	Date              string               `json:"date"`
	Weekday           string               `json:"weekday"`
	Icon              weather.IconCategory `json:"icon"`
	Glyph             string               `json:"glyph"`
	Description       string               `json:"description"`
	Max               int                  `json:"max"`
	Min               int                  `json:"min"`
	PrecipProbability int                  `json:"precipProbability"`
}

// Build derives the View for a state.
func Build(state dashboard.ViewState) View {
	v := View{
		Status:     state.Status,
		Background: weather.BackgroundDefault,
		CanTrigger: state.CanTrigger(),
	}

	switch state.Status {
	case dashboard.StatusError:
		v.Message = state.Message
	case dashboard.StatusSuccess:
		if state.Snapshot == nil {
			break
		}
		snap := state.Snapshot
		cur := snap.Current
		category := weather.IconFor(cur.WeatherCode)

		v.Background = weather.BackgroundFor(cur.WeatherCode, cur.IsDay)
		v.Location = snap.LocationName
		v.Current = &CurrentView{
			Temperature: roundHalfUp(cur.Temperature),
			FeelsLike:   roundHalfUp(cur.ApparentTemperature),
			Description: weather.Describe(cur.WeatherCode),
			Icon:        category,
			Glyph:       category.Glyph(cur.IsDay),
			RainfallMM:  cur.Precipitation,
			IsDay:       cur.IsDay,
		}
		for _, d := range snap.Daily.Days(weather.ForecastDays) {
			dayCategory := weather.IconFor(d.WeatherCode)
			v.Days = append(v.Days, DayView{
				Date:              d.Date,
				Weekday:           weekday(d.Date),
				Icon:              dayCategory,
				Glyph:             dayCategory.Glyph(true),
				Description:       weather.Describe(d.WeatherCode),
				Max:               roundHalfUp(d.TempMax),
				Min:               roundHalfUp(d.TempMin),
				PrecipProbability: roundHalfUp(d.PrecipitationProbabilityMax),
			})
		}
	}

	v.Gradient = v.Background.Gradient()
	return v
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

func weekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}
