package account_test

import (
	"os"
	"path/filepath"
	"testing"

	"account-db-compare/feature/account"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	regularJSON = `{"account":{"balance":{"dataType":"bi","value":"a"},"nonce":{"dataType":"bi","value":"1"}},"accountType":0}`
	specialJSON = `{"accountType":13,"name":"Foundation","nonce":7}`
)

// newStoreFile creates a sqlite file at path seeded through the gorm models.
func newStoreFile(t *testing.T, path string, seed func(db *gorm.DB)) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	if seed != nil {
		seed(db)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

func newArchiverFile(t *testing.T, rows ...account.ArchiverAccount) string {
	t.Helper()
	return newStoreFile(t, filepath.Join(t.TempDir(), "archiver.sqlite"), func(db *gorm.DB) {
		require.NoError(t, db.AutoMigrate(&account.ArchiverAccount{}))
		for _, r := range rows {
			require.NoError(t, db.Create(&r).Error)
		}
	})
}

func newNodeFile(t *testing.T, path string, rows ...account.NodeAccountEntry) string {
	t.Helper()
	return newStoreFile(t, path, func(db *gorm.DB) {
		require.NoError(t, db.AutoMigrate(&account.NodeAccountEntry{}))
		for _, r := range rows {
			require.NoError(t, db.Create(&r).Error)
		}
	})
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}
