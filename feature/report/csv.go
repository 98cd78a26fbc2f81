package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"account-db-compare/core/reconcile"
)

// CSVHeader lists the columns written by WriteCSV.
var CSVHeader = []string{
	"account_id",
	"node",
	"archiver_balance",
	"archiver_nonce",
	"node_balance",
	"node_nonce",
	"mismatch",
}

// WriteCSV writes every result of every successful pass, one row per result.
// The mismatch column holds the differing fields joined with "|", empty for a
// match, or the status for an identity missing on one side.
func WriteCSV(w io.Writer, passes []*reconcile.Pass) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, pass := range passes {
		if pass.Err != nil {
			continue
		}
		for i := range pass.Results {
			if err := cw.Write(csvRecord(&pass.Results[i])); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(r *reconcile.Result) []string {
	flags := r.Mismatches.String()
	switch status := r.Status(); status {
	case reconcile.StatusMissingInNode, reconcile.StatusMissingInArchiver:
		flags = string(status)
	}

	return []string{
		r.AccountID,
		r.Node,
		r.Archiver.BalanceString(),
		r.Archiver.NonceString(),
		r.Replica.BalanceString(),
		r.Replica.NonceString(),
		flags,
	}
}
