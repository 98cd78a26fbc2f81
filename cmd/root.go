package cmd

import (
	"fmt"
	"os"

	"account-db-compare/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "account-db-compare",
	Short: "Compare archiver accounts against node account databases",
	Long: `account-db-compare reconciles the account snapshots stored by an archiver
with the account ledgers of every node instance found under a folder.

Each account is matched by id, its balance and nonce are decoded from the
stored JSON and compared, and a per-node summary is printed. Mismatches are
reported but do not make the command fail.

Examples:
  # Compare and print mismatches only
  account-db-compare -a archiver.sqlite -n ./instances

  # Print every comparison and write a CSV report
  account-db-compare -a archiver.sqlite -n ./instances -v -o report.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runCompare,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config for readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP("archiver-db", "a", "", "Path to the archiver sqlite database (required)")
	RootCmd.PersistentFlags().StringP("nodes-folder", "n", "", "Folder containing node instance folders (required)")
	RootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	RootCmd.Flags().BoolP("verbose", "v", false, "Print every comparison, not only mismatches")
	RootCmd.Flags().StringP("output", "o", "", "Write every comparison to a CSV file")
	RootCmd.Flags().Int("workers", 0, "Number of nodes compared concurrently (default 4)")
	RootCmd.Flags().String("metrics-file", "", "Write run totals to a Prometheus textfile")
	RootCmd.Flags().Bool("upload", false, "Upload the reports to the configured object storage")
}
