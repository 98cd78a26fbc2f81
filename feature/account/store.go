package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"account-db-compare/core/database"
	"account-db-compare/core/reconcile"
	"account-db-compare/core/utils"

	"gorm.io/gorm"
)

var (
	// ErrTableNotFound is returned when the store has no account table.
	ErrTableNotFound = errors.New("account table not found")

	// ErrMissingColumn is returned when the account table lacks a required column.
	ErrMissingColumn = errors.New("account table is missing a required column")
)

// TableSource reads account rows from one SQL table.
// It implements reconcile.Source and io.Closer.
type TableSource struct {
	name    string
	db      *gorm.DB
	profile StoreProfile
	owned   bool
}

// NewTableSource wraps an existing connection. The caller keeps ownership of db.
func NewTableSource(name string, db *gorm.DB, profile StoreProfile) *TableSource {
	return &TableSource{name: name, db: db, profile: profile}
}

// OpenArchiver connects to the archiver database described by cfg.
func OpenArchiver(cfg database.Config, table string) (*TableSource, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return &TableSource{
		name:    "archiver",
		db:      db,
		profile: ArchiverProfile().WithTable(table),
		owned:   true,
	}, nil
}

// OpenNode opens the sqlite database of one node instance.
func OpenNode(node NodeDB, table string, timeoutSeconds int) (*TableSource, error) {
	db, err := database.Connect(database.Config{
		Driver:         database.DriverSQLite,
		Path:           node.Path,
		TimeoutSeconds: timeoutSeconds,
	})
	if err != nil {
		return nil, err
	}
	return &TableSource{
		name:    node.Name,
		db:      db,
		profile: NodeProfile().WithTable(table),
		owned:   true,
	}, nil
}

// Name returns the store name used to attribute results.
func (s *TableSource) Name() string {
	return s.name
}

// Scan streams every row of the account table to fn.
// The timestamp column is optional; required columns are checked up front.
func (s *TableSource) Scan(ctx context.Context, fn func(reconcile.Row) error) error {
	columns, err := s.selectColumns()
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), s.profile.TableName)
	rows, err := s.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", s.profile.TableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		row := reconcile.Row{
			AccountID: utils.ToString(values[0]),
			Data:      utils.ToBytes(values[1]),
		}
		if len(values) > 2 {
			row.Timestamp = utils.ToInt64(values[2])
		}

		if err := fn(row); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", s.profile.TableName, err)
	}
	return nil
}

// Close releases the connection if the source opened it.
func (s *TableSource) Close() error {
	if !s.owned {
		return nil
	}
	return database.Close(s.db)
}

// selectColumns returns the physical columns to select in order:
// account id, data and, when present, timestamp.
func (s *TableSource) selectColumns() ([]string, error) {
	existing, err := database.ColumnSet(s.db, s.profile.TableName)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, s.profile.TableName)
	}

	for _, field := range s.profile.Required {
		col := s.profile.Columns[field]
		if _, ok := existing[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingColumn, s.profile.TableName, col)
		}
	}

	columns := []string{s.profile.Columns[ColAccountID], s.profile.Columns[ColData]}
	if col, ok := s.profile.Columns[ColTimestamp]; ok {
		if _, present := existing[strings.ToLower(col)]; present {
			columns = append(columns, col)
		}
	}
	return columns, nil
}
