package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/models"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())

	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Upstream.PacingDelay)

	assert.Equal(t, "weather_data.csv", cfg.Output.CSVPath)
	assert.Equal(t, "static/charts", cfg.Output.ChartsDir)

	assert.Equal(t, CacheTypeMemory, cfg.Cache.Type)
	assert.Equal(t, "weatherdash:snapshot", cfg.Cache.Redis.Key)

	assert.False(t, cfg.Archive.Enabled)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 30, cfg.Scheduler.IntervalMinutes)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("REFRESH_INTERVAL_MINUTES", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, CacheTypeRedis, cfg.Cache.Type)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 5, cfg.Scheduler.IntervalMinutes)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "PORT", "70000"},
		{"bad upstream url", "OPEN_METEO_BASE_URL", "ftp://example.com"},
		{"unknown cache type", "CACHE_TYPE", "mongodb"},
		{"zero refresh interval", "REFRESH_INTERVAL_MINUTES", "0"},
		{"huge refresh interval", "REFRESH_INTERVAL_MINUTES", "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestArchiveConfig_Validate(t *testing.T) {
	disabled := ArchiveConfig{Enabled: false, Driver: "mongodb"}
	assert.NoError(t, disabled.Validate())

	badDriver := ArchiveConfig{Enabled: true, Driver: "mongodb"}
	assert.Error(t, badDriver.Validate())

	sqlite := ArchiveConfig{Enabled: true, Driver: "sqlite", SQLitePath: "archive.db"}
	assert.NoError(t, sqlite.Validate())

	postgres := ArchiveConfig{
		Enabled: true, Driver: "postgres",
		Host: "localhost", Port: 5432, Name: "weatherdash",
	}
	assert.NoError(t, postgres.Validate())
}

func TestArchiveConfig_GetDSN(t *testing.T) {
	archive := ArchiveConfig{
		Host: "db.internal", Port: 5432,
		User: "weather", Password: "secret",
		Name: "weatherdash", SSLMode: "disable",
	}

	dsn := archive.GetDSN()
	assert.Equal(t, "host=db.internal port=5432 user=weather password=secret dbname=weatherdash sslmode=disable", dsn)
}

func TestLoadCities_Defaults(t *testing.T) {
	cfg := &Config{}

	cities, err := cfg.LoadCities()
	require.NoError(t, err)
	require.Len(t, cities, 10)
	assert.Equal(t, "New York", cities[0].Name)
	assert.Equal(t, "Rio de Janeiro", cities[9].Name)
}

func TestLoadCities_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	content := `[
		{"city": "Oslo", "latitude": 59.9139, "longitude": 10.7522},
		{"city": "Lima", "latitude": -12.0464, "longitude": -77.0428}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := &Config{CitiesFile: path}
	cities, err := cfg.LoadCities()
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Oslo", cities[0].Name)
	assert.Equal(t, -77.0428, cities[1].Longitude)
}

func TestLoadCities_FileErrors(t *testing.T) {
	missing := &Config{CitiesFile: filepath.Join(t.TempDir(), "absent.json")}
	_, err := missing.LoadCities()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))
	malformed := &Config{CitiesFile: path}
	_, err = malformed.LoadCities()
	assert.Error(t, err)
}

func TestValidateCities(t *testing.T) {
	assert.Error(t, ValidateCities(nil))

	valid := []models.City{{Name: "Oslo", Latitude: 59.9139, Longitude: 10.7522}}
	assert.NoError(t, ValidateCities(valid))

	badLatitude := []models.City{{Name: "Nowhere", Latitude: 95.0, Longitude: 0.0}}
	assert.Error(t, ValidateCities(badLatitude))

	badLongitude := []models.City{{Name: "Nowhere", Latitude: 0.0, Longitude: 200.0}}
	assert.Error(t, ValidateCities(badLongitude))

	unnamed := []models.City{{Name: "", Latitude: 0.0, Longitude: 0.0}}
	assert.Error(t, ValidateCities(unnamed))

	duplicated := []models.City{
		{Name: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
		{Name: "Oslo", Latitude: 59.9139, Longitude: 10.7522},
	}
	assert.Error(t, ValidateCities(duplicated))
}
