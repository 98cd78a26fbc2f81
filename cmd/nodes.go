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

var nodesJSON bool

// nodesCmd lists the node databases a comparison would read.
var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List node databases found under the nodes folder",
	Long: `List every node database file found under the nodes folder together with
the node name it will be reported as.

Examples:
  account-db-compare nodes -n ./instances
  account-db-compare nodes -n ./instances --json`,
	Args: cobra.NoArgs,
	RunE: runNodes,
}

func init() {
	nodesCmd.Flags().BoolVar(&nodesJSON, "json", false, "Print the list as JSON")

	RootCmd.AddCommand(nodesCmd)
}

func runNodes(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".", cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Nodes.Validate(); err != nil {
		return err
	}

	found, err := account.DiscoverNodes(afero.NewOsFs(), cfg.Nodes.Folder, cfg.Nodes.DBFile)
	if err != nil {
		return err
	}

	if nodesJSON {
		if found == nil {
			found = []account.NodeDB{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	}

	report.PrintNodes(cmd.OutOrStdout(), found)
	return nil
}
