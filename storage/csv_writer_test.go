package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/models"
)

func intPtr(v int) *int { return &v }

func exportFixture() []models.NormalizedObservation {
	return []models.NormalizedObservation{
		{
			City:         "London",
			TemperatureC: 20.0,
			TemperatureF: 68.0,
			Humidity:     intPtr(70),
			WindSpeedMS:  5.0,
			WindSpeedMPH: 11.2,
			Latitude:     51.5074,
			Longitude:    -0.1278,
			Timestamp:    "2024-01-15T12:00",
		},
		{
			City:         "Cairo",
			TemperatureC: 31.5,
			TemperatureF: 88.7,
			WindSpeedMS:  3.1,
			WindSpeedMPH: 6.9,
			Latitude:     30.0444,
			Longitude:    31.2357,
			Timestamp:    "2024-01-15T12:00",
		},
	}
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_data.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	fixture := exportFixture()
	require.NoError(t, w.WriteObservations(fixture))

	got, err := ReadObservations(path)
	require.NoError(t, err)
	assert.Equal(t, fixture, got)
}

func TestCSVWriter_HeaderAndFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_data.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteObservations(exportFixture()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "city,temperature_c,temperature_f,humidity,wind_speed_ms,wind_speed_mph,latitude,longitude,timestamp", lines[0])
	assert.Equal(t, "London,20.0,68.0,70,5.0,11.2,51.5074,-0.1278,2024-01-15T12:00", lines[1])
	// Absent humidity exports as an empty cell.
	assert.Equal(t, "Cairo,31.5,88.7,,3.1,6.9,30.0444,31.2357,2024-01-15T12:00", lines[2])
}

func TestCSVWriter_WriteReplacesPreviousExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_data.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteObservations(exportFixture()))
	require.NoError(t, w.WriteObservations(exportFixture()[:1]))

	got, err := ReadObservations(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "London", got[0].City)
}

func TestCSVWriter_EmptyObservationsWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_data.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteObservations(nil))

	got, err := ReadObservations(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewCSVWriter_CreatesIntermediateDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "nested", "weather_data.csv")
	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteObservations(exportFixture()))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestReadObservations_MissingFile(t *testing.T) {
	_, err := ReadObservations(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
