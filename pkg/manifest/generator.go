package manifest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dtnitsch/css-prioritize/pkg/mapreduce"
	"github.com/dtnitsch/css-prioritize/pkg/storage"
	"github.com/dtnitsch/css-prioritize/pkg/tally"
)

// topLimit is the number of properties listed per input and in aggregate.
const topLimit = 25

// InputResult is the outcome of reading and reducing one input file.
type InputResult struct {
	Path          string
	Name          string
	Error         error
	ErrorType     string
	UnitCount     int
	Partial       tally.Map // reduced tally of this input alone
	FileSizeBytes int64
}

// Build assembles the manifest for a run without writing it.
func Build(results []InputResult, total tally.Map, weight string, now time.Time) SummaryManifest {
	manifest := SummaryManifest{
		GeneratedAt:         now.Format(time.RFC3339),
		Weight:              weight,
		TotalInputs:         len(results),
		DistinctProperties:  total.Len(),
		AggregateProperties: mapreduce.TopProperties(total, topLimit),
		Results:             make([]InputSummary, 0, len(results)),
	}

	for _, result := range results {
		summary := InputSummary{
			Path: result.Path,
			Name: result.Name,
		}

		if result.Error != nil {
			manifest.Failed++
			summary.Status = "error"
			summary.ErrorType = result.ErrorType
			summary.ErrorMessage = result.Error.Error()
		} else {
			manifest.Successful++
			manifest.TotalUnits += result.UnitCount
			summary.Status = "success"
			summary.SizeBytes = result.FileSizeBytes
			summary.UnitCount = result.UnitCount
			summary.TopProperties = mapreduce.TopProperties(result.Partial, topLimit)
		}

		manifest.Results = append(manifest.Results, summary)
	}

	return manifest
}

// GenerateSummary writes the run manifest to path as indented JSON and
// returns the path.
func GenerateSummary(results []InputResult, total tally.Map, weight string, s *storage.Storage, path string) (string, error) {
	manifest := Build(results, total, weight, time.Now())

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}

	if err := s.SaveFile(path, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}

	return path, nil
}
