// Package utils provides loose conversions for values scanned from SQL rows,
// where the concrete Go type depends on the driver and the column affinity.
package utils
