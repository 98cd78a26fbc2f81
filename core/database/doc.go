// Package database opens account stores and inspects their schema.
//
// It wraps GORM to open either a SQLite database file (the archiver snapshot
// and every node ledger are SQLite files) or, for the archiver only, a MySQL
// mirror of the same table.
//
// # Connect
//
// Connect opens SQLite files read-only and refuses to create missing files,
// so a wrong path is reported rather than compared as an empty store.
//
// # Schema Inspection
//
// GetTableColumns and ColumnSet list a table's columns, letting store readers
// check for the columns they select before scanning.
//
// # Usage
//
//	db, err := database.Connect(database.Config{Driver: "sqlite", Path: "archiver.sqlite3"})
//	if err != nil {
//	    return err
//	}
//	defer database.Close(db)
//
//	columns, err := database.ColumnSet(db, "accounts")
package database
