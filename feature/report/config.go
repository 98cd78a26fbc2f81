package report

// Config holds output settings for a comparison run.
type Config struct {
	// Verbose prints every comparison instead of mismatches only.
	Verbose bool `mapstructure:"verbose" default:"false"`
	// Output is the CSV file receiving every result, empty to skip.
	Output string `mapstructure:"output" default:""`
	// MetricsFile is a Prometheus textfile receiving run totals, empty to skip.
	MetricsFile string `mapstructure:"metrics_file" default:""`
	// NoColor disables colored status labels.
	NoColor bool `mapstructure:"no_color" default:"false"`
}
