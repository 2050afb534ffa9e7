package aggregate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/css-prioritize/models"
	"github.com/dtnitsch/css-prioritize/pkg/analytics"
	"github.com/dtnitsch/css-prioritize/pkg/manifest"
	"github.com/dtnitsch/css-prioritize/pkg/mapreduce"
	"github.com/dtnitsch/css-prioritize/pkg/prioritize"
	"github.com/dtnitsch/css-prioritize/pkg/storage"
	"github.com/dtnitsch/css-prioritize/pkg/tally"
	"github.com/dtnitsch/css-prioritize/pkg/usage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrAllInputsFailed is returned when no input could be reduced.
	ErrAllInputsFailed = errors.New("every input failed")
	// ErrInitialNotFound is returned when --initial names a file that does not exist.
	ErrInitialNotFound = errors.New("initial accumulator not found")
)

func newLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// ConfigFromContext collects the tally flags into a TallyConfig. Positional
// arguments are treated as additional inputs.
func ConfigFromContext(c *cli.Context) models.TallyConfig {
	inputs := append([]string{}, c.StringSlice("input")...)
	inputs = append(inputs, c.Args().Slice()...)

	return models.TallyConfig{
		Inputs:             inputs,
		Initial:            c.String("initial"),
		WorkerCount:        c.Int("workers"),
		Weight:             c.String("weight"),
		ThresholdMin:       c.Int("threshold-min"),
		ThresholdWeight:    c.Int("threshold-weight"),
		Cap:                c.Int("cap"),
		FoldVendorPrefixes: c.Bool("fold-vendor-prefixes"),
		Format:             c.String("format"),
		Output:             c.String("output"),
		Top:                c.Int("top"),
		Summary:            c.String("summary"),
	}
}

// TallyAction reduces every input usage batch into one combined tally.
func TallyAction(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"))
	config := ConfigFromContext(c)

	_, err := Run(config, &storage.Storage{}, c.App.Writer, logger)
	return err
}

// Run executes a tally run and returns the combined tally. The encoded tally
// is written to config.Output, or to out when no output path is set.
func Run(config models.TallyConfig, s *storage.Storage, out io.Writer, logger *slog.Logger) (tally.Map, error) {
	if len(config.Inputs) == 0 {
		return tally.Map{}, fmt.Errorf("no inputs provided via --input or arguments")
	}

	format := strings.ToLower(config.Format)
	if format == "" {
		format = models.FormatYAML
	}
	if format != models.FormatYAML && format != models.FormatJSON {
		return tally.Map{}, fmt.Errorf("unsupported format %q (valid: yaml, json)", config.Format)
	}

	transform, err := prioritize.WeightByName(config.Weight, prioritize.WeightOptions{
		Min:    config.ThresholdMin,
		Weight: config.ThresholdWeight,
		Max:    config.Cap,
	})
	if err != nil {
		return tally.Map{}, err
	}
	weight := config.Weight
	if weight == "" {
		weight = prioritize.WeightBinary
	}

	loader := usage.NewLoader(&analytics.Analytics{FoldVendorPrefixes: config.FoldVendorPrefixes})

	initial := tally.Map{}
	if config.Initial != "" {
		if !s.HasFile(config.Initial) {
			return tally.Map{}, fmt.Errorf("%w: %s", ErrInitialNotFound, config.Initial)
		}
		data, err := s.ReadFile(config.Initial)
		if err != nil {
			return tally.Map{}, fmt.Errorf("failed to read initial accumulator: %w", err)
		}
		initial, err = loader.LoadAccumulator(data)
		if err != nil {
			return tally.Map{}, fmt.Errorf("failed to decode initial accumulator %s: %w", config.Initial, err)
		}
		logger.Info("Loaded initial accumulator", "path", config.Initial, "properties", initial.Len())
	}

	workerCount := 4
	if config.WorkerCount > 0 {
		workerCount = config.WorkerCount
	}
	logger.Info("Reducing usage batches", "inputs", len(config.Inputs), "workers", workerCount, "weight", weight)

	results := reduceInputs(config.Inputs, workerCount, s, loader, transform, logger)

	var partials []tally.Map
	for _, result := range results {
		if result.Error == nil {
			partials = append(partials, result.Partial)
		}
	}
	if len(partials) == 0 {
		return tally.Map{}, fmt.Errorf("%w (%d inputs)", ErrAllInputsFailed, len(results))
	}
	if failed := len(results) - len(partials); failed > 0 {
		logger.Warn("Some inputs failed", "failed", failed, "successful", len(partials))
	}

	// Partials are already weighted, so they fold onto the initial accumulator as raw counts.
	combined := mapreduce.Reduce(partials)
	total := prioritize.ReduceDataBulk([]tally.Map{combined}, initial, prioritize.Identity)
	logger.Info("Reduce phase complete", "properties", total.Len())

	encoded, err := EncodeTally(total, format)
	if err != nil {
		return tally.Map{}, err
	}
	if config.Output != "" {
		if err := s.SaveFile(config.Output, encoded); err != nil {
			return tally.Map{}, err
		}
		logger.Info("Tally saved", "path", config.Output)
	} else if _, err := out.Write(encoded); err != nil {
		return tally.Map{}, fmt.Errorf("failed to write tally: %w", err)
	}

	if config.Top > 0 {
		fmt.Fprintf(out, "\n--- Top %d Properties ---\n", config.Top)
		if err := mapreduce.PrintTopProperties(out, total, config.Top); err != nil {
			return tally.Map{}, fmt.Errorf("failed to write top properties: %w", err)
		}
	}

	if config.Summary != "" {
		path, err := manifest.GenerateSummary(results, total, weight, s, config.Summary)
		if err != nil {
			logger.Error("Error generating summary manifest", "error", err)
		} else {
			logger.Info("Summary manifest saved", "path", path)
		}
	}

	return total, nil
}

// EncodeTally renders m as YAML or JSON, keeping key order.
func EncodeTally(m tally.Map, format string) ([]byte, error) {
	switch format {
	case models.FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tally: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tally: %w", err)
		}
		return data, nil
	}
}

// TopAction prints the highest counts of a previously written tally.
func TopAction(c *cli.Context) error {
	path := c.String("input")
	if path == "" {
		path = c.Args().First()
	}
	if path == "" {
		return fmt.Errorf("no tally file provided via --input or argument")
	}

	logger := newLogger(c.Bool("quiet"))
	s := &storage.Storage{}
	data, err := s.ReadFile(path)
	if err != nil {
		return err
	}

	m, err := usage.NewLoader(nil).LoadAccumulator(data)
	if err != nil {
		return fmt.Errorf("failed to decode tally %s: %w", path, err)
	}
	logger.Info("Loaded tally", "path", path, "properties", m.Len(), "total", m.Sum())

	return mapreduce.PrintTopProperties(c.App.Writer, m, c.Int("top"))
}
