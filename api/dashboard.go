package api

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type dashboardRow struct {
	City         string
	TemperatureC string
	TemperatureF string
	Humidity     string
	WindSpeedMS  string
	WindSpeedMPH string
}

type dashboardChart struct {
	Name  string
	Title string
}

type dashboardView struct {
	LastUpdated string
	TotalCities int
	AvgTempC    string
	AvgHumidity string
	AvgWindMPH  string
	Rows        []dashboardRow
	Charts      []dashboardChart
}

var chartTitles = []dashboardChart{
	{Name: "temperature_comparison", Title: "Temperature Comparison"},
	{Name: "humidity_wind_analysis", Title: "Humidity & Wind Analysis"},
	{Name: "comprehensive_dashboard", Title: "Comprehensive Dashboard"},
}

// dashboard renders the HTML landing page. Before the first refresh
// completes it renders a distinct loading page instead of failing.
func (s *Server) dashboard(c *gin.Context) {
	snapshot, ok := s.snapshots.Current()
	if !ok || snapshot.Insights == nil {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(loadingPage))
		return
	}

	view := dashboardView{
		LastUpdated: snapshot.GeneratedAt.Format("2006-01-02 15:04:05"),
		TotalCities: snapshot.Insights.TotalCities,
		AvgTempC:    formatFloat1(snapshot.Insights.TemperatureStats.AvgTemperatureC),
		AvgWindMPH:  formatFloat1(snapshot.Insights.WindStats.AvgWindSpeedMPH),
		AvgHumidity: "n/a",
	}
	if snapshot.Insights.HumidityStats.AvgHumidity != nil {
		view.AvgHumidity = formatFloat1(*snapshot.Insights.HumidityStats.AvgHumidity)
	}

	for _, obs := range snapshot.Observations {
		humidity := "—"
		if obs.Humidity != nil {
			humidity = strconv.Itoa(*obs.Humidity)
		}
		view.Rows = append(view.Rows, dashboardRow{
			City:         obs.City,
			TemperatureC: formatFloat1(obs.TemperatureC),
			TemperatureF: formatFloat1(obs.TemperatureF),
			Humidity:     humidity,
			WindSpeedMS:  formatFloat1(obs.WindSpeedMS),
			WindSpeedMPH: formatFloat1(obs.WindSpeedMPH),
		})
	}

	for _, chart := range chartTitles {
		if _, exists := snapshot.Charts[chart.Name]; exists {
			view.Charts = append(view.Charts, chart)
		}
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(c.Writer, view); err != nil {
		_ = c.Error(err)
	}
}

func formatFloat1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

const loadingPage = `<!DOCTYPE html>
<html>
<head>
    <title>Weather Analytics</title>
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
        .loading { color: #667eea; font-size: 1.2em; }
    </style>
</head>
<body>
    <h1>Weather Analytics</h1>
    <p class="loading">Weather data is currently being loaded. Please refresh in a moment.</p>
    <a href="/update">Refresh Data</a>
</body>
</html>
`

const updatePage = `<!DOCTYPE html>
<html>
<head>
    <title>Updating Weather Data</title>
    <meta http-equiv="refresh" content="3;url=/">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
        .loading { color: #667eea; font-size: 1.2em; }
    </style>
</head>
<body>
    <h1>Updating Weather Data</h1>
    <p class="loading">Please wait while we fetch fresh weather data...</p>
    <p>You will be redirected to the dashboard shortly.</p>
</body>
</html>
`

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Weather Analytics Dashboard</title>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 0;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: #333;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; color: white; margin-bottom: 30px; }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .stat-card {
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 4px 6px rgba(0,0,0,0.1);
            text-align: center;
        }
        .stat-value { font-size: 2em; font-weight: bold; color: #667eea; }
        .data-table {
            background: white;
            border-radius: 10px;
            padding: 20px;
            margin-bottom: 30px;
            box-shadow: 0 4px 6px rgba(0,0,0,0.1);
            overflow-x: auto;
        }
        table { width: 100%; border-collapse: collapse; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f8f9fa; font-weight: bold; }
        .actions { text-align: center; margin: 30px 0; }
        .btn {
            display: inline-block;
            padding: 12px 24px;
            margin: 0 10px;
            background: #667eea;
            color: white;
            text-decoration: none;
            border-radius: 5px;
            font-weight: bold;
        }
        .btn.secondary { background: #6c757d; }
        .chart-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
            gap: 20px;
        }
        .chart-link {
            display: block;
            text-align: center;
            padding: 20px;
            background: white;
            border-radius: 10px;
            text-decoration: none;
            color: #667eea;
            font-weight: bold;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Weather Analytics</h1>
            <p>Global Weather Intelligence Dashboard</p>
            <p>Last Updated: {{.LastUpdated}}</p>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="stat-value">{{.TotalCities}}</div>
                <div>Cities Analyzed</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.AvgTempC}}&deg;C</div>
                <div>Average Temperature</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.AvgHumidity}}%</div>
                <div>Average Humidity</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.AvgWindMPH}} mph</div>
                <div>Average Wind Speed</div>
            </div>
        </div>

        <div class="data-table">
            <h2>Weather Data Summary</h2>
            <table>
                <thead>
                    <tr>
                        <th>City</th>
                        <th>Temperature (&deg;C)</th>
                        <th>Temperature (&deg;F)</th>
                        <th>Humidity (%)</th>
                        <th>Wind Speed (m/s)</th>
                        <th>Wind Speed (mph)</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Rows}}
                    <tr>
                        <td><strong>{{.City}}</strong></td>
                        <td>{{.TemperatureC}}&deg;C</td>
                        <td>{{.TemperatureF}}&deg;F</td>
                        <td>{{.Humidity}}</td>
                        <td>{{.WindSpeedMS}} m/s</td>
                        <td>{{.WindSpeedMPH}} mph</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>

        {{if .Charts}}
        <div class="chart-grid">
            {{range .Charts}}
            <a href="/charts/{{.Name}}" class="chart-link">{{.Title}}</a>
            {{end}}
        </div>
        {{end}}

        <div class="actions">
            <a href="/api/data" class="btn">View JSON Data</a>
            <a href="/download/csv" class="btn">Download CSV</a>
            <a href="/update" class="btn secondary">Refresh Data</a>
        </div>
    </div>
</body>
</html>
`))
