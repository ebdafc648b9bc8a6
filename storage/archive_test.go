package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func archiveTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "archive_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ArchivedObservation{}))
	return db
}

func TestObservationArchive_ArchiveAndCount(t *testing.T) {
	archive := NewObservationArchive(archiveTestDB(t))
	ctx := context.Background()

	first := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	require.NoError(t, archive.Archive(ctx, exportFixture(), first))
	require.NoError(t, archive.Archive(ctx, exportFixture(), second))

	cycles, err := archive.CountCycles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cycles)
}

func TestObservationArchive_PreservesAbsentHumidity(t *testing.T) {
	db := archiveTestDB(t)
	archive := NewObservationArchive(db)
	ctx := context.Background()

	collectedAt := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, archive.Archive(ctx, exportFixture(), collectedAt))

	var rows []ArchivedObservation
	require.NoError(t, db.Order("city").Find(&rows).Error)
	require.Len(t, rows, 2)

	assert.Equal(t, "Cairo", rows[0].City)
	assert.Nil(t, rows[0].Humidity)
	assert.Equal(t, "London", rows[1].City)
	require.NotNil(t, rows[1].Humidity)
	assert.Equal(t, 70, *rows[1].Humidity)
}

func TestObservationArchive_EmptyCycleIsNoop(t *testing.T) {
	archive := NewObservationArchive(archiveTestDB(t))
	ctx := context.Background()

	require.NoError(t, archive.Archive(ctx, nil, time.Now()))

	cycles, err := archive.CountCycles(ctx)
	require.NoError(t, err)
	assert.Zero(t, cycles)
}
