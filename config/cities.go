package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

var validate = validator.New()

// DefaultCities is the built-in registry of monitored locations.
var DefaultCities = []models.City{
	{Name: "New York", Latitude: 40.7128, Longitude: -74.0060},
	{Name: "Tokyo", Latitude: 35.6895, Longitude: 139.6917},
	{Name: "London", Latitude: 51.5074, Longitude: -0.1278},
	{Name: "Paris", Latitude: 48.8566, Longitude: 2.3522},
	{Name: "Berlin", Latitude: 52.5200, Longitude: 13.4050},
	{Name: "Sydney", Latitude: -33.8688, Longitude: 151.2093},
	{Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777},
	{Name: "Cape Town", Latitude: -33.9249, Longitude: 18.4241},
	{Name: "Moscow", Latitude: 55.7558, Longitude: 37.6173},
	{Name: "Rio de Janeiro", Latitude: -22.9068, Longitude: -43.1729},
}

// LoadCities returns the city registry: the contents of CitiesFile when set,
// the built-in list otherwise. The registry is validated either way.
func (c *Config) LoadCities() ([]models.City, error) {
	cities := DefaultCities

	if c.CitiesFile != "" {
		data, err := os.ReadFile(c.CitiesFile)
		if err != nil {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("read cities file %q", c.CitiesFile), err)
		}
		var loaded []models.City
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, errors.NewConfigurationError(
				fmt.Sprintf("parse cities file %q", c.CitiesFile), err)
		}
		cities = loaded
	}

	if err := ValidateCities(cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// ValidateCities checks coordinate ranges and name uniqueness. Aggregation
// labels cities by name, so duplicates would be ambiguous.
func ValidateCities(cities []models.City) error {
	if len(cities) == 0 {
		return errors.NewConfigurationError("city registry cannot be empty", nil)
	}

	seen := make(map[string]struct{}, len(cities))
	for _, city := range cities {
		if err := validate.Struct(city); err != nil {
			return errors.NewConfigurationError(
				fmt.Sprintf("invalid city entry %q", city.Name), err)
		}
		if _, dup := seen[city.Name]; dup {
			return errors.NewConfigurationError(
				fmt.Sprintf("duplicate city name %q in registry", city.Name), nil)
		}
		seen[city.Name] = struct{}{}
	}
	return nil
}
