package account

// StoreProfile defines the table layout of an account store.
type StoreProfile struct {
	// TableName is the name of the account table in the database.
	TableName string

	// Columns maps logical field names to actual database column names.
	Columns map[string]string

	// Required lists the logical fields that must exist for the table to be read.
	Required []string
}

// Column name constants for logical field references.
const (
	ColAccountID = "account_id"
	ColData      = "data"
	ColTimestamp = "timestamp"
)

const (
	// DefaultArchiverTable is the archiver's account snapshot table.
	DefaultArchiverTable = "accounts"
	// DefaultNodeTable is a node's account ledger table.
	DefaultNodeTable = "accountsEntry"
	// DefaultNodeDBFile is the database file name inside a node instance folder.
	DefaultNodeDBFile = "shardeum.sqlite"
)

// ArchiverProfile returns the store profile for the archiver database.
func ArchiverProfile() StoreProfile {
	return StoreProfile{
		TableName: DefaultArchiverTable,
		Columns: map[string]string{
			ColAccountID: "accountId",
			ColData:      "data",
			ColTimestamp: "timestamp",
		},
		Required: []string{ColAccountID, ColData},
	}
}

// NodeProfile returns the store profile for a node database.
func NodeProfile() StoreProfile {
	return StoreProfile{
		TableName: DefaultNodeTable,
		Columns: map[string]string{
			ColAccountID: "accountId",
			ColData:      "data",
			ColTimestamp: "timestamp",
		},
		Required: []string{ColAccountID, ColData},
	}
}

// WithTable returns a copy of the profile reading from another table.
// An empty name keeps the current table.
func (p StoreProfile) WithTable(table string) StoreProfile {
	if table != "" {
		p.TableName = table
	}
	return p
}
