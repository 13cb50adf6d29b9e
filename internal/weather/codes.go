package weather

// UnknownDescription is returned by Describe for codes outside the WMO table.
const UnknownDescription = "Unknown Weather"

var descriptions = map[int]string{
	0:  "Clear Sky",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Rime Fog",
	51: "Light Drizzle",
	53: "Moderate Drizzle",
	55: "Dense Drizzle",
	61: "Slight Rain",
	63: "Moderate Rain",
	65: "Heavy Rain",
	66: "Light Freezing Rain",
	67: "Heavy Freezing Rain",
	71: "Slight Snow",
	73: "Moderate Snow",
	75: "Heavy Snow",
	77: "Snow Grains",
	80: "Slight Rain Showers",
	81: "Moderate Rain Showers",
	82: "Violent Rain Showers",
	85: "Slight Snow Showers",
	86: "Heavy Snow Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with Hail",
	99: "Thunderstorm with Heavy Hail",
}

// KnownCodes returns every WMO code the description table covers.
func KnownCodes() []int {
	return []int{0, 1, 2, 3, 45, 48, 51, 53, 55, 61, 63, 65, 66, 67, 71, 73, 75, 77, 80, 81, 82, 85, 86, 95, 96, 99}
}

// Describe returns human-readable text for a WMO weather code.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return UnknownDescription
}

// IconCategory groups weather codes that share an icon.
type IconCategory string

const (
	IconClear        IconCategory = "clear"
	IconPartlyCloudy IconCategory = "partly_cloudy"
	IconFog          IconCategory = "fog"
	IconRain         IconCategory = "rain"
	IconSnow         IconCategory = "snow"
	IconThunderstorm IconCategory = "thunderstorm"
	IconUnknown      IconCategory = "unknown"
)

// IconFor maps a WMO code to its icon group.
func IconFor(code int) IconCategory {
	switch code {
	case 0:
		return IconClear
	case 1, 2, 3:
		return IconPartlyCloudy
	case 45, 48:
		return IconFog
	case 51, 53, 55, 61, 63, 65, 80, 81, 82:
		return IconRain
	case 71, 73, 75, 85, 86:
		return IconSnow
	case 95, 96, 99:
		return IconThunderstorm
	default:
		return IconUnknown
	}
}

// Glyph returns the symbol drawn for the category. Only clear and partly
// cloudy skies look different at night.
func (c IconCategory) Glyph(isDay bool) string {
	switch c {
	case IconClear:
		if isDay {
			return "☀"
		}
		return "☾"
	case IconPartlyCloudy:
		if isDay {
			return "⛅"
		}
		return "☁"
	case IconFog:
		return "🌫"
	case IconRain:
		return "🌧"
	case IconSnow:
		return "❄"
	case IconThunderstorm:
		return "⛈"
	default:
		return "✱"
	}
}

// Background is an opaque style token for the dashboard backdrop.
type Background string

const (
	BackgroundClearDay    Background = "clear-day"
	BackgroundClearNight  Background = "clear-night"
	BackgroundCloudyDay   Background = "cloudy-day"
	BackgroundCloudyNight Background = "cloudy-night"
	BackgroundFog         Background = "fog"
	BackgroundPrecip      Background = "precipitation"
	BackgroundSnow        Background = "snow"
	BackgroundStorm       Background = "storm"
	BackgroundDefault     Background = "default"
)

// BackgroundFor picks the backdrop for a code and time of day.
func BackgroundFor(code int, isDay bool) Background {
	switch IconFor(code) {
	case IconClear:
		if isDay {
			return BackgroundClearDay
		}
		return BackgroundClearNight
	case IconPartlyCloudy:
		if isDay {
			return BackgroundCloudyDay
		}
		return BackgroundCloudyNight
	case IconFog:
		return BackgroundFog
	case IconRain:
		return BackgroundPrecip
	case IconSnow:
		return BackgroundSnow
	case IconThunderstorm:
		return BackgroundStorm
	default:
		return BackgroundDefault
	}
}

var gradients = map[Background][]string{
	BackgroundClearDay:    {"#38bdf8", "#2563eb"},
	BackgroundClearNight:  {"#0f172a", "#312e81", "#0f172a"},
	BackgroundCloudyDay:   {"#0284c7", "#64748b"},
	BackgroundCloudyNight: {"#334155", "#0f172a"},
	BackgroundFog:         {"#94a3b8", "#475569"},
	BackgroundPrecip:      {"#475569", "#1e3a8a", "#1e293b"},
	BackgroundSnow:        {"#bae6fd", "#94a3b8"},
	BackgroundStorm:       {"#1e293b", "#581c87", "#0f172a"},
	BackgroundDefault:     {"#1e3a8a", "#312e81"},
}

// Gradient returns the hex colour stops for the backdrop, top-left first.
func (b Background) Gradient() []string {
	if g, ok := gradients[b]; ok {
		return g
	}
	return gradients[BackgroundDefault]
}
