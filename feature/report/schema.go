package report

import (
	"fmt"
	"io"
	"strings"

	"account-db-compare/feature/account"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintSchema lists schema check results, one row per store.
func PrintSchema(w io.Writer, reports []*account.SchemaReport, noColor bool) {
	statusColor := map[string]*color.Color{
		account.SchemaOK:    color.New(color.FgGreen),
		account.SchemaWarn:  color.New(color.FgYellow),
		account.SchemaError: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, c := range statusColor {
			c.DisableColor()
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Store", "Table", "Status", "Details"})

	for _, r := range reports {
		var details []string
		if len(r.MissingColumns) > 0 {
			details = append(details, "missing: "+strings.Join(r.MissingColumns, ", "))
		}
		details = append(details, r.TypeMismatches...)
		details = append(details, r.Errors...)

		status := r.Status
		if c, ok := statusColor[r.Status]; ok {
			status = c.Sprint(r.Status)
		}
		tbl.AppendRow(table.Row{r.Store, r.Table, status, strings.Join(details, "\n")})
	}

	fmt.Fprintln(w, tbl.Render())
}
