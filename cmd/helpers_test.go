package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"account-db-compare/core/config"
	"account-db-compare/core/database"
	"account-db-compare/feature/account"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func regularPayload(balanceHex, nonceHex string) string {
	return `{"account":{"balance":{"dataType":"bi","value":"` + balanceHex + `"},"nonce":{"dataType":"bi","value":"` + nonceHex + `"}},"accountType":0}`
}

const foundationPayload = `{"accountType":13,"id":"1000","name":"Foundation","nonce":7}`

func seedStore(t *testing.T, path string, model any, rows ...any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model))
	for _, r := range rows {
		require.NoError(t, db.Create(r).Error)
	}
	require.NoError(t, database.Close(db))
}

// workspace lays out an archiver file and a nodes folder with one
// <node>/db/shardeum.sqlite per entry of nodes.
type workspace struct {
	dir      string
	archiver string
	nodes    string
}

func newWorkspace(t *testing.T, archived map[string]string, nodes map[string]map[string]string) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		dir:      dir,
		archiver: filepath.Join(dir, "archiver.sqlite"),
		nodes:    filepath.Join(dir, "instances"),
	}

	var rows []any
	for id, data := range archived {
		rows = append(rows, &account.ArchiverAccount{AccountID: id, Data: data, Timestamp: 1})
	}
	seedStore(t, ws.archiver, &account.ArchiverAccount{}, rows...)

	require.NoError(t, os.MkdirAll(ws.nodes, 0o755))
	for name, accounts := range nodes {
		var entries []any
		for id, data := range accounts {
			entries = append(entries, &account.NodeAccountEntry{AccountID: id, Data: data, Timestamp: 1})
		}
		seedStore(t, filepath.Join(ws.nodes, name, "db", account.DefaultNodeDBFile), &account.NodeAccountEntry{}, entries...)
	}
	return ws
}

func (ws workspace) config() *config.Config {
	cfg := &config.Config{}
	cfg.Archiver.Driver = database.DriverSQLite
	cfg.Archiver.Path = ws.archiver
	cfg.Archiver.Table = account.DefaultArchiverTable
	cfg.Nodes.Folder = ws.nodes
	cfg.Nodes.DBFile = account.DefaultNodeDBFile
	cfg.Nodes.Table = account.DefaultNodeTable
	cfg.Nodes.Workers = 2
	cfg.Report.NoColor = true
	return cfg
}

// resetFlags restores every flag of c and its children to its default.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(t, sub)
	}
}
