package storage

import (
	"context"
	"time"

	"weatherdash.app/models"
)

// ObservationWriter is the interface a tabular export backend must satisfy.
type ObservationWriter interface {
	WriteObservations(observations []models.NormalizedObservation) error
}

// ObservationArchiver is the interface a persistent archive backend must satisfy.
type ObservationArchiver interface {
	Archive(ctx context.Context, observations []models.NormalizedObservation, collectedAt time.Time) error
}
