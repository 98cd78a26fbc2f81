package cmd

import (
	"encoding/json"
	"fmt"

	"account-db-compare/core/config"
	"account-db-compare/feature/account"
	"account-db-compare/feature/report"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var checkJSON bool

// checkCmd verifies the account tables of every store before a comparison.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the account table schema of the archiver and every node",
	Long: `Check that the archiver and every node database have an account table
with the columns the comparison reads.

Missing optional columns and type differences are reported as warnings.
The command fails when a store cannot be opened or lacks a required column.

Examples:
  account-db-compare check -a archiver.sqlite -n ./instances
  account-db-compare check -a archiver.sqlite -n ./instances --json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the reports as JSON")

	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	reports, err := checkStores(cfg, afero.NewOsFs())
	if err != nil {
		return err
	}

	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		report.PrintSchema(cmd.OutOrStdout(), reports, cfg.Report.NoColor)
	}

	failed := 0
	for _, r := range reports {
		if r.Status == account.SchemaError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("schema check failed for %d of %d stores", failed, len(reports))
	}
	return nil
}

// checkStores checks the archiver and every discovered node. A node that
// cannot be opened gets an error report instead of aborting the check.
func checkStores(cfg *config.Config, fs afero.Fs) ([]*account.SchemaReport, error) {
	archiver, err := account.OpenArchiver(cfg.Archiver.Config, cfg.Archiver.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to open archiver database %s: %w", cfg.Archiver.Location(), err)
	}
	defer archiver.Close()

	archiverReport, err := archiver.CheckSchema(account.ArchiverAccount{})
	if err != nil {
		return nil, err
	}
	reports := []*account.SchemaReport{archiverReport}

	found, err := account.DiscoverNodes(fs, cfg.Nodes.Folder, cfg.Nodes.DBFile)
	if err != nil {
		return nil, err
	}

	for _, n := range found {
		src, err := account.OpenNode(n, cfg.Nodes.Table, cfg.Nodes.TimeoutSeconds)
		if err != nil {
			reports = append(reports, &account.SchemaReport{
				Store:          n.Name,
				Table:          cfg.Nodes.Table,
				Status:         account.SchemaError,
				MissingColumns: []string{},
				TypeMismatches: []string{},
				Errors:         []string{err.Error()},
			})
			continue
		}
		r, err := src.CheckSchema(account.NodeAccountEntry{})
		src.Close()
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, nil
}
