// Package logger provides a structured logging facility based on Zap.
//
// Logs go to stderr; the comparison report owns stdout.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithRun(log, runID)
//	logger.WithNode(log, "node-1", path).Warn("Node skipped", zap.Error(err))
package logger
