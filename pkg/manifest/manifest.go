package manifest

// SummaryManifest represents the structure of the summary JSON file.
// It gives a lightweight overview of a tally run: which inputs were read,
// how many units each held, and which properties ranked highest.
type SummaryManifest struct {
	GeneratedAt         string         `json:"generated_at"`
	Weight              string         `json:"weight"`
	TotalInputs         int            `json:"total_inputs"`
	Successful          int            `json:"successful"`
	Failed              int            `json:"failed"`
	TotalUnits          int            `json:"total_units"`
	DistinctProperties  int            `json:"distinct_properties"`
	AggregateProperties []string       `json:"aggregate_properties"`
	Results             []InputSummary `json:"results"`
}

// InputSummary represents summary information for a single input file.
type InputSummary struct {
	Path          string   `json:"path"`
	Name          string   `json:"name,omitempty"`
	Status        string   `json:"status"` // "success" or "error"
	ErrorType     string   `json:"error_type,omitempty"`
	ErrorMessage  string   `json:"error_message,omitempty"`
	SizeBytes     int64    `json:"size_bytes,omitempty"`
	UnitCount     int      `json:"unit_count"`
	TopProperties []string `json:"top_properties,omitempty"`
}
