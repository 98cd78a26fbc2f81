package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"account-db-compare/core/config"
	"account-db-compare/core/logger"
	"account-db-compare/core/reconcile"
	"account-db-compare/core/storage"
	"account-db-compare/feature/account"
	"account-db-compare/feature/report"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newStorageClient is replaced in tests.
var newStorageClient = storage.NewClient

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	runID := uuid.NewString()
	_, err = compare(ctx, cfg, logger.WithRun(l, runID), afero.NewOsFs(), cmd.OutOrStdout(), runID)
	return err
}

// compare runs one full comparison and writes the configured reports.
// Only an unreadable archiver, a missing nodes folder or a failing report
// output return an error; mismatches and failed nodes are part of the report.
func compare(ctx context.Context, cfg *config.Config, l *zap.Logger, fs afero.Fs, out io.Writer, runID string) (*reconcile.Run, error) {
	archiver, err := account.OpenArchiver(cfg.Archiver.Config, cfg.Archiver.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to open archiver database %s: %w", cfg.Archiver.Location(), err)
	}
	defer archiver.Close()

	idx, err := reconcile.BuildIndex(ctx, archiver, account.NewNormalizer())
	if err != nil {
		return nil, err
	}
	for _, rej := range idx.Rejects() {
		l.Warn("Skipping unparsable archiver record", zap.String("account_id", rej.AccountID), zap.Error(rej.Err))
	}
	l.Info("Loaded accounts from archiver database",
		zap.Int("accounts", idx.Len()),
		zap.Int("unparsable", len(idx.Rejects())),
	)

	found, err := account.DiscoverNodes(fs, cfg.Nodes.Folder, cfg.Nodes.DBFile)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		l.Warn("No node databases found", zap.String("folder", cfg.Nodes.Folder), zap.String("file", cfg.Nodes.DBFile))
	}

	nodes := account.Nodes(found, cfg.Nodes.Table, cfg.Nodes.TimeoutSeconds)
	run, err := reconcile.RunNodes(ctx, idx, nodes, cfg.Nodes.Workers)
	if err != nil {
		return nil, err
	}
	logPasses(l, run)

	report.NewPrinter(out, cfg.Report).Print(run)

	if err := writeReports(ctx, cfg, l, fs, run, runID); err != nil {
		return run, err
	}
	return run, nil
}

func logPasses(l *zap.Logger, run *reconcile.Run) {
	for _, p := range run.Passes {
		nl := logger.WithNode(l, p.Node, p.Path)
		if p.Err != nil {
			nl.Error("Skipping node", zap.Error(p.Err))
			continue
		}
		for _, u := range p.Unparsable {
			nl.Warn("Skipping unparsable node record", zap.String("account_id", u.AccountID), zap.Error(u.Err))
		}
		nl.Info("Loaded accounts from node", zap.Int("accounts", p.Loaded))
	}
	l.Info("Comparison finished",
		zap.Int("nodes", len(run.Passes)),
		zap.Int("failed", len(run.Stats.Failed)),
		zap.Int("compared", run.Stats.Global.Compared),
		zap.Int("mismatched", run.Stats.Global.Mismatched),
	)
}

// writeReports writes the CSV and metrics files and uploads them when enabled.
func writeReports(ctx context.Context, cfg *config.Config, l *zap.Logger, fs afero.Fs, run *reconcile.Run, runID string) error {
	uploads := map[string][]byte{}

	if cfg.Report.Output != "" || cfg.Storage.Enabled {
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, run.Passes); err != nil {
			return err
		}

		name := "report.csv"
		if cfg.Report.Output != "" {
			if err := afero.WriteFile(fs, cfg.Report.Output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write csv output %s: %w", cfg.Report.Output, err)
			}
			l.Info("CSV report written", zap.String("path", cfg.Report.Output))
			name = filepath.Base(cfg.Report.Output)
		}
		uploads[name] = buf.Bytes()
	}

	if cfg.Report.MetricsFile != "" {
		var buf bytes.Buffer
		if err := report.WriteMetrics(&buf, run); err != nil {
			return err
		}
		if err := afero.WriteFile(fs, cfg.Report.MetricsFile, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write metrics file %s: %w", cfg.Report.MetricsFile, err)
		}
		l.Info("Metrics written", zap.String("path", cfg.Report.MetricsFile))
		uploads[filepath.Base(cfg.Report.MetricsFile)] = buf.Bytes()
	}

	if !cfg.Storage.Enabled {
		return nil
	}

	client, err := newStorageClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	publisher := report.NewPublisher(client, cfg.Storage, l)
	for name, data := range uploads {
		if _, err := publisher.Publish(ctx, runID, name, data); err != nil {
			return err
		}
	}
	return nil
}
