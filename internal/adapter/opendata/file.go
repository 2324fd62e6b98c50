package opendata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
)

// FileSource reads the dataset from a local CSV file, for offline runs.
// It implements pipeline.Extractor.
type FileSource struct {
	path    string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, metrics *observability.Metrics, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, metrics: metrics, logger: logger}
}

// Source returns the file path.
func (f *FileSource) Source() string {
	return f.path
}

// Extract parses the file. The context is checked once before reading.
func (f *FileSource) Extract(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}
	start := time.Now()

	file, err := os.Open(f.path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	table, err := ParseCSV(file)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%s: %w", f.path, err)
	}

	f.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	f.logger.Info("dataset read", "path", f.path, "rows", len(table.Rows), "columns", len(table.Columns))
	return table, nil
}
