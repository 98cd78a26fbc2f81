// Package config provides configuration management for the account comparison tool.
//
// It utilizes Viper for loading configuration from a .env file, environment
// variables and command-line flags, in increasing order of precedence.
// Defaults are declared with `default` struct tags on each partial config.
//
// # Configuration Structure
//
//   - Log: logging level and format (LOG_LEVEL, LOG_FORMAT)
//   - Archiver: archiver database driver, path and table (ARCHIVER_PATH)
//   - Nodes: nodes folder, database file name, table and workers (NODES_FOLDER)
//   - Report: verbose output, CSV output and metrics file (REPORT_VERBOSE)
//   - Storage: S3/MinIO upload of the CSV report (STORAGE_ENABLED)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", cmd.Flags())
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
