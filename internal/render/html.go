package render

import (
	"html/template"
	"io"
	"strings"
)

var page = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if eq .View.Status "loading"}}<meta http-equiv="refresh" content="2">{{end}}
<title>Weather Forecast</title>
<style>
body{margin:0;min-height:100vh;font-family:system-ui,sans-serif;color:#fff;display:flex;flex-direction:column;align-items:center;justify-content:center}
.panel{background:rgba(255,255,255,.2);border-radius:24px;padding:24px;margin:12px;max-width:900px;width:90%}
.days{display:grid;grid-template-columns:repeat(7,1fr);gap:12px}
.day{background:rgba(255,255,255,.1);border-radius:16px;padding:12px;text-align:center}
.temp{font-size:64px;font-weight:200}
.glyph{font-size:48px}
button{padding:10px 24px;border:0;border-radius:999px;font-weight:700;color:#1e3a8a;background:#fff;cursor:pointer}
button:disabled{opacity:.5;cursor:default}
.error{background:rgba(239,68,68,.3)}
footer{opacity:.5;font-size:12px;margin-top:24px;text-align:center}
</style>
</head>
<body style="{{.Style}}">
{{with .View}}
{{if eq .Status "idle"}}
<div class="panel">
<h1>Welcome to Weather Forecast</h1>
<p>Please allow location access to see the weather in your area.</p>
<form method="post" action="/refresh"><button type="submit">Get My Weather</button></form>
</div>
{{else if eq .Status "loading"}}
<div class="panel"><p>Loading weather&hellip;</p></div>
{{else if eq .Status "error"}}
<div class="panel error">
<p>{{.Message}}</p>
<form method="post" action="/refresh"><button type="submit"{{if not .CanTrigger}} disabled{{end}}>Try Again</button></form>
</div>
{{else if eq .Status "success"}}
{{with .Current}}
<div class="panel">
<h2>{{$.View.Location}}</h2>
<div class="temp">{{.Temperature}}&deg;</div>
<p>Feels like {{.FeelsLike}}&deg;</p>
<div class="glyph">{{.Glyph}}</div>
<p>{{.Description}}</p>
<p>Rainfall: {{.RainfallMM}} mm</p>
</div>
{{end}}
<div class="panel">
<h3>7-Day Forecast</h3>
<div class="days">
{{range .Days}}<div class="day"><strong>{{.Weekday}}</strong><div class="glyph">{{.Glyph}}</div><div>{{.Max}}&deg; <small>{{.Min}}&deg;</small></div><small>{{.PrecipProbability}}%</small></div>
{{end}}
</div>
<form method="post" action="/refresh"><button type="submit">Refresh</button></form>
</div>
{{end}}
{{end}}
<footer>
<p>Weather data provided by <a href="https://open-meteo.com/">Open-Meteo</a>.</p>
<p>Location data provided by <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a>.</p>
</footer>
</body>
</html>
`))

type pageData struct {
	View  View
	Style template.CSS
}

// HTML writes the dashboard page for v.
func HTML(w io.Writer, v View) error {
	return page.Execute(w, pageData{
		View:  v,
		Style: gradientCSS(v.Gradient),
	})
}

func gradientCSS(stops []string) template.CSS {
	if len(stops) == 1 {
		return template.CSS("background:" + stops[0])
	}
	return template.CSS("background:linear-gradient(to bottom right," + strings.Join(stops, ",") + ")")
}
