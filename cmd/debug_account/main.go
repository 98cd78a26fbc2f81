package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"account-db-compare/core/config"
	"account-db-compare/core/reconcile"
	"account-db-compare/feature/account"

	"github.com/spf13/afero"
)

// debug_account prints the raw and decoded payload of one account in the
// archiver and in every node, using the ARCHIVER_* and NODES_* settings.
//
//	go run ./cmd/debug_account <accountId>
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <accountId>", os.Args[0])
	}
	accountID := os.Args[1]

	cfg, err := config.LoadConfig(".", nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	normalizer := account.NewNormalizer()
	output := map[string]any{}

	fmt.Println("=== ARCHIVER ===")
	archiver, err := account.OpenArchiver(cfg.Archiver.Config, cfg.Archiver.Table)
	if err != nil {
		log.Fatal(err)
	}
	output["archiver"] = inspect(ctx, archiver, normalizer, accountID)
	archiver.Close()

	found, err := account.DiscoverNodes(afero.NewOsFs(), cfg.Nodes.Folder, cfg.Nodes.DBFile)
	if err != nil {
		log.Fatal(err)
	}

	for _, n := range found {
		fmt.Printf("\n=== NODE %s ===\n", n.Name)
		src, err := account.OpenNode(n, cfg.Nodes.Table, cfg.Nodes.TimeoutSeconds)
		if err != nil {
			fmt.Printf("open failed: %v\n", err)
			continue
		}
		output[n.Name] = inspect(ctx, src, normalizer, accountID)
		src.Close()
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_account.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_account.json for details.")
}

// inspect prints every row of src stored under accountID.
func inspect(ctx context.Context, src reconcile.Source, n reconcile.Normalizer, accountID string) []map[string]any {
	var rows []map[string]any
	err := src.Scan(ctx, func(row reconcile.Row) error {
		if row.AccountID != accountID {
			return nil
		}
		entry := map[string]any{
			"timestamp": row.Timestamp,
			"data":      string(row.Data),
		}
		fmt.Printf("timestamp=%d\n  raw: %s\n", row.Timestamp, row.Data)

		snap, err := n.Normalize(row.Data)
		if err != nil {
			fmt.Printf("  decode failed: %v\n", err)
			entry["error"] = err.Error()
		} else {
			fmt.Printf("  kind=%s balance=%s nonce=%s\n", snap.Kind, snap.BalanceString(), snap.NonceString())
			entry["kind"] = snap.Kind.String()
			entry["balance"] = snap.BalanceString()
			entry["nonce"] = snap.NonceString()
		}
		rows = append(rows, entry)
		return nil
	})
	if err != nil {
		fmt.Printf("scan failed: %v\n", err)
	}
	if len(rows) == 0 {
		fmt.Println("NOT FOUND")
	}
	return rows
}
