package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	imageWidth  = 800
	imageHeight = 480
)

// ImageOptions controls the PNG renderer. FontPath is a TrueType font; when
// empty the built-in bitmap face is used.
type ImageOptions struct {
	FontPath string
}

// Image draws v as an 800x480 PNG.
func Image(w io.Writer, v View, opts ImageOptions) error {
	dc, err := drawDashboard(v, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func drawDashboard(v View, opts ImageOptions) (*gg.Context, error) {
	dc := gg.NewContext(imageWidth, imageHeight)

	grad := gg.NewLinearGradient(0, 0, imageWidth, imageHeight)
	stops := v.Gradient
	for i, hex := range stops {
		c, err := parseHexColor(hex)
		if err != nil {
			return nil, err
		}
		offset := 0.0
		if len(stops) > 1 {
			offset = float64(i) / float64(len(stops)-1)
		}
		grad.AddColorStop(offset, c)
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, imageWidth, imageHeight)
	dc.Fill()

	setFont := func(size float64) error {
		if opts.FontPath == "" {
			return nil
		}
		if err := dc.LoadFontFace(opts.FontPath, size); err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		return nil
	}

	dc.SetRGB(1, 1, 1)

	switch v.Status {
	case dashboard.StatusIdle:
		if err := setFont(28); err != nil {
			return nil, err
		}
		dc.DrawStringAnchored("Welcome to Weather Forecast", imageWidth/2, imageHeight/2, 0.5, 0.5)
	case dashboard.StatusLoading:
		if err := setFont(28); err != nil {
			return nil, err
		}
		dc.DrawStringAnchored("Loading weather...", imageWidth/2, imageHeight/2, 0.5, 0.5)
	case dashboard.StatusError:
		if err := setFont(22); err != nil {
			return nil, err
		}
		dc.DrawStringWrapped(v.Message, imageWidth/2, imageHeight/2, 0.5, 0.5, imageWidth-80, 1.4, gg.AlignCenter)
	case dashboard.StatusSuccess:
		if v.Current == nil {
			break
		}
		if err := drawCurrent(dc, v, setFont); err != nil {
			return nil, err
		}
		if err := drawDays(dc, v.Days, setFont); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func drawCurrent(dc *gg.Context, v View, setFont func(float64) error) error {
	c := v.Current
	if err := setFont(32); err != nil {
		return err
	}
	dc.DrawString(v.Location, 30, 60)

	if err := setFont(72); err != nil {
		return err
	}
	dc.DrawString(fmt.Sprintf("%d°", c.Temperature), 30, 150)

	if err := setFont(20); err != nil {
		return err
	}
	dc.DrawString(fmt.Sprintf("Feels like %d°", c.FeelsLike), 30, 190)
	dc.DrawStringAnchored(c.Description, imageWidth-30, 100, 1, 0)
	dc.DrawStringAnchored(fmt.Sprintf("Rainfall: %g mm", c.RainfallMM), imageWidth-30, 140, 1, 0)
	return nil
}

func drawDays(dc *gg.Context, days []DayView, setFont func(float64) error) error {
	if len(days) == 0 {
		return nil
	}
	if err := setFont(16); err != nil {
		return err
	}

	top := 260.0
	colWidth := float64(imageWidth-40) / float64(len(days))
	for i, d := range days {
		x := 20 + colWidth*float64(i)

		dc.SetRGBA(1, 1, 1, 0.1)
		dc.DrawRoundedRectangle(x+4, top, colWidth-8, 180, 12)
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		cx := x + colWidth/2
		dc.DrawStringAnchored(d.Weekday, cx, top+30, 0.5, 0.5)
		dc.DrawStringAnchored(iconLabel(d.Icon), cx, top+70, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%d° / %d°", d.Max, d.Min), cx, top+110, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%d%%", d.PrecipProbability), cx, top+150, 0.5, 0.5)
	}
	return nil
}

// Short labels stand in for the icon glyphs, which the bitmap face cannot draw.
var iconLabels = map[weather.IconCategory]string{
	weather.IconClear:        "Clear",
	weather.IconPartlyCloudy: "Cloudy",
	weather.IconFog:          "Fog",
	weather.IconRain:         "Rain",
	weather.IconSnow:         "Snow",
	weather.IconThunderstorm: "Storm",
}

func iconLabel(c weather.IconCategory) string {
	if l, ok := iconLabels[c]; ok {
		return l
	}
	return "Unknown"
}

func parseHexColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid colour %q", hex)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}
