// Package models defines data structures for run configuration.
package models

// TallyConfig holds runtime configuration for a tally run.
// All values come from CLI flags (or their environment variables), not config files.
type TallyConfig struct {
	Inputs      []string
	Initial     string // optional accumulator document to reduce into
	WorkerCount int

	Weight          string
	ThresholdMin    int
	ThresholdWeight int
	Cap             int

	FoldVendorPrefixes bool

	Format  string // yaml or json
	Output  string // empty writes to stdout
	Top     int
	Summary string // empty skips the manifest
}

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)
