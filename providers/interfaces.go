package providers

import (
	"context"

	"weatherdash.app/models"
)

// WeatherFetcher defines the interface for fetching the current observation
// for a single registry city. Implementations return an error to signal that
// the city should be dropped from the current refresh cycle; callers never
// retry within a cycle.
type WeatherFetcher interface {
	Fetch(ctx context.Context, city models.City) (*models.Observation, error)
}
