// Package report renders the outcome of a comparison run.
//
// Outputs:
//   - Printer: console blocks for mismatches (every result in verbose mode),
//     a summary and a per-node table.
//   - WriteCSV: one row per result with the archiver and node balance/nonce
//     and the mismatch flags.
//   - WriteMetrics: run totals in the Prometheus textfile format.
//   - Publisher: uploads report files to S3-compatible storage.
//
// # Usage
//
//	p := report.NewPrinter(os.Stdout, cfg.Report)
//	p.Print(run)
//	err = report.WriteCSV(f, run.Passes)
package report
