// Package models defines data structures used throughout the application
package models

import "time"

// City is a single registry entry: a monitored location with fixed coordinates.
// Name is the identity and must be unique within the registry.
type City struct {
	Name      string  `json:"city" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Observation is the raw per-city result of one upstream fetch. Pointer fields
// are nil when the upstream payload omits them.
type Observation struct {
	City        string   `json:"city"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Temperature *float64 `json:"temperature_c"`
	Humidity    *int     `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed_ms"`
	Timestamp   string   `json:"timestamp"`
}

// NormalizedObservation is an Observation with derived imperial fields.
// All four numeric fields carry one decimal place.
type NormalizedObservation struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperature_c"`
	TemperatureF float64 `json:"temperature_f"`
	Humidity     *int    `json:"humidity"`
	WindSpeedMS  float64 `json:"wind_speed_ms"`
	WindSpeedMPH float64 `json:"wind_speed_mph"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timestamp    string  `json:"timestamp"`
}

// TemperatureStats summarizes temperature extrema and averages.
type TemperatureStats struct {
	HottestCity     string  `json:"hottest_city"`
	ColdestCity     string  `json:"coldest_city"`
	AvgTemperatureC float64 `json:"avg_temperature_c"`
	AvgTemperatureF float64 `json:"avg_temperature_f"`
}

// HumidityStats summarizes humidity extrema and averages. The city fields are
// empty and AvgHumidity is nil when every observation lacked humidity.
type HumidityStats struct {
	MostHumidCity  string   `json:"most_humid_city"`
	LeastHumidCity string   `json:"least_humid_city"`
	AvgHumidity    *float64 `json:"avg_humidity"`
}

// WindStats summarizes wind extrema and averages.
type WindStats struct {
	WindiestCity    string  `json:"windiest_city"`
	CalmestCity     string  `json:"calmest_city"`
	AvgWindSpeedMPH float64 `json:"avg_wind_speed_mph"`
}

// Insights is the derived summary over one refresh cycle's observations.
type Insights struct {
	TotalCities      int              `json:"total_cities"`
	CollectionTime   string           `json:"data_collection_time"`
	TemperatureStats TemperatureStats `json:"temperature_stats"`
	HumidityStats    HumidityStats    `json:"humidity_stats"`
	WindStats        WindStats        `json:"wind_stats"`
}

// Snapshot is the single live result set: observations, insights, the
// chart-name to file-path mapping, and the time it was generated. A refresh
// replaces it wholesale; it is never partially updated.
type Snapshot struct {
	Observations []NormalizedObservation `json:"observations"`
	Insights     *Insights               `json:"insights"`
	Charts       map[string]string       `json:"charts"`
	GeneratedAt  time.Time               `json:"generated_at"`
}

// DataResponse is the payload served by /api/data and /api/data/raw.
type DataResponse struct {
	Data        []NormalizedObservation `json:"data"`
	Insights    *Insights               `json:"insights"`
	LastUpdated string                  `json:"last_updated"`
	TotalCities int                     `json:"total_cities"`
}

// HealthResponse is the payload served by /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	DataAvailable bool   `json:"data_available"`
	LastUpdate    string `json:"last_update,omitempty"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
