package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Missing SQLite File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.sqlite")

		db, err := Connect(Config{Driver: DriverSQLite, Path: path})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, db)

		// Must not create the file as a side effect
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Directory Instead Of File", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Path: t.TempDir()})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "archiver",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Existing SQLite File", func(t *testing.T) {
		path := newSQLiteFile(t, "CREATE TABLE accounts (accountId TEXT PRIMARY KEY, data TEXT)")

		db, err := Connect(Config{Driver: DriverSQLite, Path: path})
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.NoError(t, Close(db))
	})
}

func TestConfig_Location(t *testing.T) {
	assert.Equal(t, "/tmp/a.sqlite", Config{Driver: DriverSQLite, Path: "/tmp/a.sqlite"}.Location())
	assert.Equal(t, "db.internal/archiver", Config{Driver: DriverMySQL, Host: "db.internal", Name: "archiver"}.Location())
}
