package account

import (
	"errors"

	"account-db-compare/core/database"
)

var (
	// ErrArchiverPathRequired is returned when no archiver database is configured.
	ErrArchiverPathRequired = errors.New("archiver database path is required")

	// ErrNodesFolderRequired is returned when no nodes folder is configured.
	ErrNodesFolderRequired = errors.New("nodes folder is required")
)

// ArchiverConfig holds the archiver store location.
type ArchiverConfig struct {
	database.Config `mapstructure:",squash"`
	// Table is the account snapshot table.
	Table string `mapstructure:"table" default:"accounts"`
}

// Validate checks that the archiver store can be located.
func (c ArchiverConfig) Validate() error {
	if c.Driver == database.DriverMySQL {
		if c.Host == "" {
			return errors.New("archiver database host is required")
		}
		return nil
	}
	if c.Path == "" {
		return ErrArchiverPathRequired
	}
	return nil
}

// NodesConfig holds node discovery settings.
type NodesConfig struct {
	// Folder is the root searched recursively for node databases.
	Folder string `mapstructure:"folder" default:""`
	// DBFile is the database file name of a node instance.
	DBFile string `mapstructure:"db_file" default:"shardeum.sqlite"`
	// Table is the node account ledger table.
	Table string `mapstructure:"table" default:"accountsEntry"`
	// Workers bounds the number of nodes compared concurrently.
	Workers int `mapstructure:"workers" default:"4"`
	// TimeoutSeconds bounds opening each node database.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate checks that a nodes folder is configured.
func (c NodesConfig) Validate() error {
	if c.Folder == "" {
		return ErrNodesFolderRequired
	}
	return nil
}
