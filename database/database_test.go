package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/config"
	"weatherdash.app/storage"
)

func TestInitDB_SQLite(t *testing.T) {
	cfg := config.ArchiveConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "archive.db"),
	}

	db, err := InitDB(cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, CloseDB(db))
	}()

	require.NoError(t, RunMigrations(db))
	assert.True(t, db.Migrator().HasTable(&storage.ArchivedObservation{}))
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(config.ArchiveConfig{Driver: "mongodb"})
	assert.Error(t, err)
}
