package account_test

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"account-db-compare/core/database"
	"account-db-compare/feature/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openArchiver(t *testing.T, path string) *account.TableSource {
	t.Helper()
	src, err := account.OpenArchiver(database.Config{Driver: database.DriverSQLite, Path: path}, "")
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })
	return src
}

func TestCheckSchema(t *testing.T) {
	t.Run("MatchesModel", func(t *testing.T) {
		src := openArchiver(t, newArchiverFile(t))

		report, err := src.CheckSchema(account.ArchiverAccount{})
		require.NoError(t, err)
		assert.Equal(t, account.SchemaOK, report.Status)
		assert.Equal(t, "archiver", report.Store)
		assert.Equal(t, "accounts", report.Table)
		assert.Empty(t, report.MissingColumns)
		assert.Empty(t, report.TypeMismatches)
	})

	t.Run("OptionalColumnsMissing", func(t *testing.T) {
		path := newStoreFile(t, filepath.Join(t.TempDir(), "lean.sqlite"), func(db *gorm.DB) {
			require.NoError(t, db.Exec("CREATE TABLE accounts (accountId TEXT, data TEXT, timestamp INTEGER)").Error)
		})

		report, err := openArchiver(t, path).CheckSchema(&account.ArchiverAccount{})
		require.NoError(t, err)
		assert.Equal(t, account.SchemaWarn, report.Status)
		assert.ElementsMatch(t, []string{"hash", "cyclenumber", "isglobal"}, report.MissingColumns)
		assert.Equal(t, []string{"accountid: expected varchar(255), got text"}, report.TypeMismatches)
	})

	t.Run("RequiredColumnMissing", func(t *testing.T) {
		path := newStoreFile(t, filepath.Join(t.TempDir(), "bad.sqlite"), func(db *gorm.DB) {
			require.NoError(t, db.Exec("CREATE TABLE accounts (accountId varchar(255), timestamp INTEGER)").Error)
		})

		report, err := openArchiver(t, path).CheckSchema(account.ArchiverAccount{})
		require.NoError(t, err)
		assert.Equal(t, account.SchemaError, report.Status)
		assert.Contains(t, report.MissingColumns, "data")
	})

	t.Run("MissingTable", func(t *testing.T) {
		path := newStoreFile(t, filepath.Join(t.TempDir(), "empty.sqlite"), func(db *gorm.DB) {
			require.NoError(t, db.Exec("CREATE TABLE other (id INTEGER)").Error)
		})

		report, err := openArchiver(t, path).CheckSchema(account.ArchiverAccount{})
		require.NoError(t, err)
		assert.Equal(t, account.SchemaError, report.Status)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "account table not found")
	})

	t.Run("NotAStruct", func(t *testing.T) {
		_, err := openArchiver(t, newArchiverFile(t)).CheckSchema("accounts")
		assert.Error(t, err)
	})

	t.Run("InspectFails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `accountsEntry`")).WillReturnError(errors.New("access denied"))

		src := account.NewTableSource("node-1", db, account.NodeProfile())
		report, err := src.CheckSchema(account.NodeAccountEntry{})
		require.NoError(t, err)
		assert.Equal(t, account.SchemaError, report.Status)
		assert.Contains(t, report.Errors[0], "access denied")
	})
}
