package report

import (
	"fmt"
	"io"
	"strings"

	"account-db-compare/core/reconcile"
	"account-db-compare/feature/account"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Printer renders a comparison run as human-readable text.
type Printer struct {
	w       io.Writer
	verbose bool

	ok   *color.Color
	bad  *color.Color
	warn *color.Color
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, cfg Config) *Printer {
	p := &Printer{
		w:       w,
		verbose: cfg.Verbose,
		ok:      color.New(color.FgGreen, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
	}
	if cfg.NoColor {
		p.ok.DisableColor()
		p.bad.DisableColor()
		p.warn.DisableColor()
	}
	return p
}

// Print writes the per-account blocks followed by the summary.
// Mismatches are always shown; matches and missing identities only in verbose mode.
func (p *Printer) Print(run *reconcile.Run) {
	fmt.Fprint(p.w, "\n=== ACCOUNT COMPARISON ===\n\n")

	for _, pass := range run.Passes {
		if pass.Err != nil {
			continue
		}
		for i := range pass.Results {
			p.printResult(&pass.Results[i])
		}
	}

	p.PrintSummary(run)
}

func (p *Printer) printResult(r *reconcile.Result) {
	switch r.Status() {
	case reconcile.StatusMatch, reconcile.StatusMismatch:
		if !p.verbose && r.Mismatches == 0 {
			return
		}
		fmt.Fprintf(p.w, "Account ID: %s\n", r.AccountID)
		fmt.Fprintf(p.w, "Node: %s\n", r.Node)
		fmt.Fprintf(p.w, "  Archiver - Balance: %s, Nonce: %s\n", r.Archiver.BalanceString(), r.Archiver.NonceString())
		fmt.Fprintf(p.w, "  Node     - Balance: %s, Nonce: %s\n", r.Replica.BalanceString(), r.Replica.NonceString())
		if r.Mismatches == 0 {
			fmt.Fprintf(p.w, "  STATUS: %s\n", p.ok.Sprint("MATCH"))
			break
		}
		fmt.Fprintf(p.w, "  STATUS: %s\n", p.bad.Sprint("MISMATCH"))
		if r.Mismatches.Has(reconcile.BalanceMismatch) {
			fmt.Fprintln(p.w, "    - Balance mismatch")
		}
		if r.Mismatches.Has(reconcile.NonceMismatch) {
			fmt.Fprintln(p.w, "    - Nonce mismatch")
		}
		if r.Mismatches.Has(reconcile.KindMismatch) {
			fmt.Fprintf(p.w, "    - Kind mismatch (%s vs %s)\n", r.Archiver.Kind, r.Replica.Kind)
		}

	case reconcile.StatusMissingInNode:
		if !p.verbose {
			return
		}
		fmt.Fprintf(p.w, "Account ID: %s (ONLY IN ARCHIVER)\n", r.AccountID)
		fmt.Fprintf(p.w, "Node: %s\n", r.Node)
		fmt.Fprintf(p.w, "  Balance: %s, Nonce: %s\n", r.Archiver.BalanceString(), r.Archiver.NonceString())
		fmt.Fprintf(p.w, "  STATUS: %s\n", p.warn.Sprint("NOT FOUND IN NODE"))

	case reconcile.StatusMissingInArchiver:
		if !p.verbose {
			return
		}
		fmt.Fprintf(p.w, "Account ID: %s (ONLY IN NODE: %s)\n", r.AccountID, r.Node)
		fmt.Fprintf(p.w, "  Balance: %s, Nonce: %s\n", r.Replica.BalanceString(), r.Replica.NonceString())
		fmt.Fprintf(p.w, "  STATUS: %s\n", p.warn.Sprint("NOT FOUND IN ARCHIVER"))
	}
	fmt.Fprintln(p.w)
}

// PrintSummary writes the global totals, failed nodes and a per-node table.
func (p *Printer) PrintSummary(run *reconcile.Run) {
	agg := run.Stats
	g := agg.Global

	fmt.Fprintln(p.w, "=== SUMMARY ===")
	fmt.Fprintf(p.w, "Archiver accounts: %s\n", humanize.Comma(int64(run.Archived)))
	fmt.Fprintf(p.w, "Nodes compared: %d\n", len(agg.Nodes))
	fmt.Fprintf(p.w, "Total comparisons: %s\n", humanize.Comma(int64(g.Compared)))
	fmt.Fprintf(p.w, "Mismatches found: %s\n", humanize.Comma(int64(g.Mismatched)))
	fmt.Fprintf(p.w, "Match rate: %.2f%%\n", g.MatchRate()*100)
	fmt.Fprintf(p.w, "Missing in node: %s\n", humanize.Comma(int64(g.MissingInNode)))
	fmt.Fprintf(p.w, "Missing in archiver: %s\n", humanize.Comma(int64(g.MissingInArchiver)))
	fmt.Fprintf(p.w, "Unparsable records: %s (archiver: %s)\n",
		humanize.Comma(int64(g.Unparsable)), humanize.Comma(int64(agg.ArchiverUnparsable)))

	if len(agg.Failed) > 0 {
		fmt.Fprintf(p.w, "Failed nodes: %s\n", p.bad.Sprint(len(agg.Failed)))
		for _, f := range agg.Failed {
			fmt.Fprintf(p.w, "  - %s (%s): %v\n", f.Node, f.Path, f.Err)
		}
	} else {
		fmt.Fprintln(p.w, "Failed nodes: 0")
	}

	if len(agg.Nodes) > 0 {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, nodeTable(agg))
	}
}

func nodeTable(agg *reconcile.Aggregate) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.AppendHeader(table.Row{"Node", "Compared", "Mismatched", "Balance", "Nonce", "Kind", "Missing in node", "Missing in archiver", "Unparsable", "Match rate"})

	for _, name := range agg.NodeNames() {
		s := agg.Nodes[name]
		tbl.AppendRow(table.Row{
			name,
			humanize.Comma(int64(s.Compared)),
			humanize.Comma(int64(s.Mismatched)),
			s.BalanceMismatches,
			s.NonceMismatches,
			s.KindMismatches,
			humanize.Comma(int64(s.MissingInNode)),
			humanize.Comma(int64(s.MissingInArchiver)),
			s.Unparsable,
			fmt.Sprintf("%.2f%%", s.MatchRate()*100),
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d nodes", len(agg.Nodes))})
	return tbl.Render()
}

// PrintNodes lists discovered node databases.
func PrintNodes(w io.Writer, nodes []account.NodeDB) {
	if len(nodes) == 0 {
		fmt.Fprintln(w, "No node databases found")
		return
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Node", "Path"})
	for i, n := range nodes {
		tbl.AppendRow(table.Row{i + 1, n.Name, n.Path})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(nodes)), ""})
	fmt.Fprintln(w, strings.TrimRight(tbl.Render(), "\n"))
}
