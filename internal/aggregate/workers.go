package aggregate

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/dtnitsch/css-prioritize/pkg/manifest"
	"github.com/dtnitsch/css-prioritize/pkg/prioritize"
	"github.com/dtnitsch/css-prioritize/pkg/storage"
	"github.com/dtnitsch/css-prioritize/pkg/tally"
	"github.com/dtnitsch/css-prioritize/pkg/usage"
)

// Job defines an input file for a worker to reduce.
type Job struct {
	Index int
	Path  string
}

// Result holds the outcome of a processed job.
type Result struct {
	Index int
	manifest.InputResult
}

// worker reads and reduces usage batches from the jobs channel and sends
// one Result per job to the results channel.
func worker(id int, s *storage.Storage, loader *usage.Loader, transform prioritize.Transform, logger *slog.Logger, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("worker started job", "worker", id, "path", job.Path)
		result := Result{
			Index:       job.Index,
			InputResult: manifest.InputResult{Path: job.Path},
		}

		data, err := s.ReadFile(job.Path)
		if err != nil {
			logger.Error("failed to read input", "worker", id, "path", job.Path, "error", err)
			result.Error = err
			result.ErrorType = "read_error"
			results <- result
			continue
		}
		if stats, err := s.GetFileStats(job.Path); err == nil {
			result.FileSizeBytes = stats.SizeBytes
		}

		batch, err := loader.LoadBatch(data)
		if err != nil {
			logger.Error("failed to decode input", "worker", id, "path", job.Path, "error", err)
			result.Error = err
			result.ErrorType = "decode_error"
			if errors.Is(err, usage.ErrEmptyDocument) {
				result.ErrorType = "empty_document"
			}
			results <- result
			continue
		}

		result.Name = batch.Name
		result.UnitCount = len(batch.Units)
		result.Partial = prioritize.ReduceDataBulk(batch.Units, tally.Map{}, transform)
		results <- result
		logger.Debug("worker finished job", "worker", id, "path", job.Path, "units", result.UnitCount, "properties", result.Partial.Len())
	}
}

// reduceInputs reduces every path on a pool of workers. Results are returned
// in input order regardless of completion order.
func reduceInputs(paths []string, workerCount int, s *storage.Storage, loader *usage.Loader, transform prioritize.Transform, logger *slog.Logger) []manifest.InputResult {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(paths) {
		workerCount = len(paths)
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(paths))
	results := make(chan Result, len(paths))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(w, s, loader, transform, logger, &wg, jobs, results)
	}

	for i, path := range paths {
		jobs <- Job{Index: i, Path: path}
	}
	close(jobs)

	wg.Wait()
	close(results)

	ordered := make([]manifest.InputResult, len(paths))
	for result := range results {
		ordered[result.Index] = result.InputResult
	}
	return ordered
}
