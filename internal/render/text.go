package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

// Text writes a plain-text rendering of v.
func Text(w io.Writer, v View) error {
	var b strings.Builder

	switch v.Status {
	case dashboard.StatusIdle:
		b.WriteString("Welcome to Weather Forecast\n")
		b.WriteString("Please allow location access to see the weather in your area.\n")
	case dashboard.StatusLoading:
		b.WriteString("Loading weather...\n")
	case dashboard.StatusError:
		fmt.Fprintf(&b, "Error: %s\n", v.Message)
		b.WriteString("Run again to try again.\n")
	case dashboard.StatusSuccess:
		if v.Current == nil {
			break
		}
		c := v.Current
		fmt.Fprintf(&b, "%s\n", v.Location)
		fmt.Fprintf(&b, "%s  %d°  %s\n", c.Glyph, c.Temperature, c.Description)
		fmt.Fprintf(&b, "Feels like %d°  Rainfall: %g mm\n", c.FeelsLike, c.RainfallMM)
		b.WriteString("\n7-Day Forecast\n")
		for _, d := range v.Days {
			fmt.Fprintf(&b, "%-4s %s  %3d° / %3d°  %3d%%  %s\n", d.Weekday, d.Glyph, d.Max, d.Min, d.PrecipProbability, d.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
