package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"weatherdash.app/config"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

const userAgent = "weatherdash/1.0"

// OpenMeteoProvider implements WeatherFetcher against the Open-Meteo forecast
// API. A shared circuit breaker turns a misbehaving upstream into fast
// per-city failures instead of ten consecutive timeouts.
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a new Open-Meteo fetcher
func NewOpenMeteoProvider(cfg *config.UpstreamConfig) *OpenMeteoProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenMeteoProvider{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		circuit: cb,
	}
}

// openMeteoResponse mirrors the subset of the upstream payload we consume.
// current_weather lacks humidity, so it is taken from the first hourly value.
type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature *float64 `json:"temperature"`
		WindSpeed   *float64 `json:"windspeed"`
		Time        string   `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		RelativeHumidity []float64 `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

// Fetch retrieves the current observation for one city.
func (p *OpenMeteoProvider) Fetch(ctx context.Context, city models.City) (*models.Observation, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(city.Latitude, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(city.Longitude, 'f', 4, 64))
	values.Set("current_weather", "true")
	values.Set("hourly", "temperature_2m,relative_humidity_2m,wind_speed_10m")
	values.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("build weather request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, execErr := p.client.Do(req)
		if execErr != nil {
			return nil, errors.NewExternalAPIError(
				fmt.Sprintf("request weather for %s", city.Name), execErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, errors.NewExternalAPIError(
				fmt.Sprintf("weather API returned status code %d for %s", resp.StatusCode, city.Name), nil)
		}

		var payload openMeteoResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, errors.NewExternalAPIError(
				fmt.Sprintf("decode weather payload for %s", city.Name), err)
		}
		return &payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload := result.(*openMeteoResponse)
	return p.toObservation(city, payload), nil
}

func (p *OpenMeteoProvider) toObservation(city models.City, payload *openMeteoResponse) *models.Observation {
	obs := &models.Observation{
		City:        city.Name,
		Latitude:    city.Latitude,
		Longitude:   city.Longitude,
		Temperature: payload.CurrentWeather.Temperature,
		WindSpeed:   payload.CurrentWeather.WindSpeed,
		Timestamp:   payload.CurrentWeather.Time,
	}

	if obs.Timestamp == "" {
		obs.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	// Sources occasionally report humidity outside the physical range; treat
	// such readings as absent to keep the published-snapshot invariant.
	if len(payload.Hourly.RelativeHumidity) > 0 {
		humidity := int(math.Round(payload.Hourly.RelativeHumidity[0]))
		if humidity >= 0 && humidity <= 100 {
			obs.Humidity = &humidity
		}
	}

	return obs
}
