package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
	apperrors "weatherdash.app/errors"
	"weatherdash.app/models"
)

var testCity = models.City{Name: "London", Latitude: 51.5074, Longitude: -0.1278}

func testProvider(baseURL string) *OpenMeteoProvider {
	return NewOpenMeteoProvider(&config.UpstreamConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "51.5074", query.Get("latitude"))
		assert.Equal(t, "-0.1278", query.Get("longitude"))
		assert.Equal(t, "true", query.Get("current_weather"))
		assert.Equal(t, "temperature_2m,relative_humidity_2m,wind_speed_10m", query.Get("hourly"))
		assert.Equal(t, "1", query.Get("forecast_days"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current_weather": {"temperature": 18.4, "windspeed": 5.2, "time": "2024-01-15T12:00"},
			"hourly": {"relative_humidity_2m": [72.6, 70.0, 68.5]}
		}`))
	}))
	defer server.Close()

	obs, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	require.NoError(t, err)

	assert.Equal(t, "London", obs.City)
	assert.Equal(t, 51.5074, obs.Latitude)
	assert.Equal(t, -0.1278, obs.Longitude)
	require.NotNil(t, obs.Temperature)
	assert.Equal(t, 18.4, *obs.Temperature)
	require.NotNil(t, obs.WindSpeed)
	assert.Equal(t, 5.2, *obs.WindSpeed)
	// Humidity comes from the first hourly value, rounded.
	require.NotNil(t, obs.Humidity)
	assert.Equal(t, 73, *obs.Humidity)
	assert.Equal(t, "2024-01-15T12:00", obs.Timestamp)
}

func TestFetch_MissingFieldsStayNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_weather": {"time": "2024-01-15T12:00"}, "hourly": {"relative_humidity_2m": []}}`))
	}))
	defer server.Close()

	obs, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	require.NoError(t, err)

	assert.Nil(t, obs.Temperature)
	assert.Nil(t, obs.WindSpeed)
	assert.Nil(t, obs.Humidity)
}

func TestFetch_OutOfRangeHumidityTreatedAsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"current_weather": {"temperature": 18.4, "windspeed": 5.2, "time": "2024-01-15T12:00"},
			"hourly": {"relative_humidity_2m": [120.0]}
		}`))
	}))
	defer server.Close()

	obs, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	require.NoError(t, err)
	assert.Nil(t, obs.Humidity)
}

func TestFetch_MissingTimestampFallsBackToNow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_weather": {"temperature": 18.4, "windspeed": 5.2}}`))
	}))
	defer server.Close()

	obs, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	require.NoError(t, err)
	assert.NotEmpty(t, obs.Timestamp)
}

func TestFetch_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
	assert.Contains(t, appErr.Message, "500")
}

func TestFetch_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_weather": `))
	}))
	defer server.Close()

	_, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
}

func TestFetch_ConnectionFailure(t *testing.T) {
	// Reserve a port and close it so the request is refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testProvider(server.URL).Fetch(context.Background(), testCity)
	assert.Error(t, err)
}
