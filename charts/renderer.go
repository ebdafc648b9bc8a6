// Package charts renders the snapshot's PNG chart artifacts.
package charts

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// Chart artifact names, also used as /charts/{name} path segments.
const (
	ChartTemperatureComparison  = "temperature_comparison"
	ChartHumidityWindAnalysis   = "humidity_wind_analysis"
	ChartComprehensiveDashboard = "comprehensive_dashboard"
)

// Renderer draws the chart set for one refresh cycle into a directory.
// A chart that fails to render is logged and omitted from the mapping; only
// an unusable output directory is a hard error.
type Renderer struct {
	dir string
}

// NewRenderer creates a chart renderer writing into dir.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewChartError("create charts dir", err)
	}
	return &Renderer{dir: dir}, nil
}

// Render produces all chart artifacts and returns the chart-name to file-path
// mapping for the snapshot.
func (r *Renderer) Render(observations []models.NormalizedObservation, insights *models.Insights) (map[string]string, error) {
	if len(observations) == 0 {
		return map[string]string{}, nil
	}

	paths := make(map[string]string)

	renderers := map[string]func([]models.NormalizedObservation, *models.Insights, string) error{
		ChartTemperatureComparison:  r.renderTemperatureComparison,
		ChartHumidityWindAnalysis:   r.renderHumidityWindAnalysis,
		ChartComprehensiveDashboard: r.renderComprehensiveDashboard,
	}

	for name, render := range renderers {
		path := filepath.Join(r.dir, name+".png")
		if err := render(observations, insights, path); err != nil {
			slog.Error("Chart rendering failed, omitting from snapshot", "chart", name, "error", err)
			continue
		}
		paths[name] = path
	}

	return paths, nil
}

// renderTemperatureComparison draws a per-city temperature bar chart.
// Observations arrive temperature-sorted, so the bars read hottest to coldest.
func (r *Renderer) renderTemperatureComparison(observations []models.NormalizedObservation, _ *models.Insights, path string) error {
	bars := make([]chart.Value, 0, len(observations))
	for _, obs := range observations {
		bars = append(bars, chart.Value{
			Value: obs.TemperatureC,
			Label: obs.City,
		})
	}

	graph := chart.BarChart{
		Title:    "Temperature Comparison (Celsius)",
		Width:    1024,
		Height:   512,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Bars: bars,
	}

	return r.writePNG(path, graph.Render)
}

// renderHumidityWindAnalysis overlays humidity and wind speed per city.
func (r *Renderer) renderHumidityWindAnalysis(observations []models.NormalizedObservation, _ *models.Insights, path string) error {
	var (
		humidityX, humidityY []float64
		windX, windY         []float64
	)
	for i, obs := range observations {
		x := float64(i)
		windX = append(windX, x)
		windY = append(windY, obs.WindSpeedMPH)
		if obs.Humidity != nil {
			humidityX = append(humidityX, x)
			humidityY = append(humidityY, float64(*obs.Humidity))
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Wind Speed (mph)",
			XValues: windX,
			YValues: windY,
		},
	}
	if len(humidityX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Humidity (%)",
			XValues: humidityX,
			YValues: humidityY,
		})
	}

	graph := chart.Chart{
		Title:  "Humidity & Wind by City",
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "City (temperature rank)",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return r.writePNG(path, graph.Render)
}

// renderComprehensiveDashboard draws temperature against humidity as a
// scatter plot; cities without humidity are left out of this view.
func (r *Renderer) renderComprehensiveDashboard(observations []models.NormalizedObservation, insights *models.Insights, path string) error {
	var xs, ys []float64
	for _, obs := range observations {
		if obs.Humidity == nil {
			continue
		}
		xs = append(xs, obs.TemperatureC)
		ys = append(ys, float64(*obs.Humidity))
	}

	// Without humidity there is nothing to correlate; fall back to the
	// temperature series alone so the artifact still exists.
	if len(xs) == 0 {
		for i, obs := range observations {
			xs = append(xs, float64(i))
			ys = append(ys, obs.TemperatureC)
		}
	}

	title := "Temperature vs Humidity"
	if insights != nil {
		title = "Global Weather Overview - " + insights.TemperatureStats.HottestCity + " hottest"
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "Temperature (C)",
		},
		YAxis: chart.YAxis{
			Name: "Humidity (%)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Cities",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    6,
				},
			},
		},
	}

	return r.writePNG(path, graph.Render)
}

func (r *Renderer) writePNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewChartError("create chart file", err)
	}

	if err := render(chart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return errors.NewChartError("render chart", err)
	}
	return f.Close()
}
