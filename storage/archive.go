package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"weatherdash.app/errors"
	"weatherdash.app/models"
)

// ArchivedObservation is the database row for one observation in one refresh
// cycle. CollectedAt groups the rows belonging to a single cycle.
type ArchivedObservation struct {
	ID           uint      `gorm:"primaryKey"`
	City         string    `gorm:"index;not null"`
	TemperatureC float64   `gorm:"not null"`
	TemperatureF float64   `gorm:"not null"`
	Humidity     *int      ``
	WindSpeedMS  float64   `gorm:"not null"`
	WindSpeedMPH float64   `gorm:"not null"`
	Latitude     float64   `gorm:"not null"`
	Longitude    float64   `gorm:"not null"`
	Timestamp    string    `gorm:"not null"`
	CollectedAt  time.Time `gorm:"index;not null"`
	CreatedAt    time.Time ``
}

// ObservationArchive appends each refresh cycle's observations to a database
// table. It is a pure side channel: nothing on the serving path reads it, and
// the snapshot cache stays single-slot regardless.
type ObservationArchive struct {
	db *gorm.DB
}

// NewObservationArchive creates an archive on an initialized database handle.
func NewObservationArchive(db *gorm.DB) *ObservationArchive {
	return &ObservationArchive{db: db}
}

// Archive inserts one row per observation for the given refresh cycle.
func (a *ObservationArchive) Archive(ctx context.Context, observations []models.NormalizedObservation, collectedAt time.Time) error {
	if len(observations) == 0 {
		return nil
	}

	rows := make([]ArchivedObservation, 0, len(observations))
	for _, obs := range observations {
		rows = append(rows, ArchivedObservation{
			City:         obs.City,
			TemperatureC: obs.TemperatureC,
			TemperatureF: obs.TemperatureF,
			Humidity:     obs.Humidity,
			WindSpeedMS:  obs.WindSpeedMS,
			WindSpeedMPH: obs.WindSpeedMPH,
			Latitude:     obs.Latitude,
			Longitude:    obs.Longitude,
			Timestamp:    obs.Timestamp,
			CollectedAt:  collectedAt,
		})
	}

	if err := a.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return errors.NewDatabaseError("insert archived observations", err)
	}
	return nil
}

// CountCycles returns the number of distinct refresh cycles in the archive.
func (a *ObservationArchive) CountCycles(ctx context.Context) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&ArchivedObservation{}).
		Distinct("collected_at").
		Count(&count).Error
	if err != nil {
		return 0, errors.NewDatabaseError("count archived cycles", err)
	}
	return count, nil
}
