package service

import (
	"math"
	"sort"

	"weatherdash.app/models"
)

// Round1 rounds to one decimal place, halves away from zero. Every numeric
// field the pipeline publishes goes through this.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CelsiusToFahrenheit converts a temperature reading.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// MetersPerSecondToMPH converts a wind speed reading.
func MetersPerSecondToMPH(ms float64) float64 {
	return ms * 2.237
}

// Normalize converts raw observations into the presentation form: derived
// imperial fields, one-decimal rounding, and a stable sort by temperature
// descending. Observations missing temperature or wind speed are dropped
// since the derived fields cannot be computed; absent humidity passes
// through. Pure function, empty input yields empty output.
func Normalize(observations []models.Observation) []models.NormalizedObservation {
	normalized := make([]models.NormalizedObservation, 0, len(observations))

	for _, obs := range observations {
		if obs.Temperature == nil || obs.WindSpeed == nil {
			continue
		}

		normalized = append(normalized, models.NormalizedObservation{
			City:         obs.City,
			TemperatureC: Round1(*obs.Temperature),
			TemperatureF: Round1(CelsiusToFahrenheit(*obs.Temperature)),
			Humidity:     obs.Humidity,
			WindSpeedMS:  Round1(*obs.WindSpeed),
			WindSpeedMPH: Round1(MetersPerSecondToMPH(*obs.WindSpeed)),
			Latitude:     obs.Latitude,
			Longitude:    obs.Longitude,
			Timestamp:    obs.Timestamp,
		})
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].TemperatureC > normalized[j].TemperatureC
	})

	return normalized
}
