// Package csvexport writes the aggregation tables of a report as CSV files.
package csvexport

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/incident-report/internal/domain"
)

// Writer exports report sections into a directory, one file per section.
// It implements pipeline.Loader.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer for dir. The directory is created on first load.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

func (w *Writer) Name() string { return "csv" }

// Load writes <section>.csv for every section. Existing files are truncated.
// The trend file is skipped when the report has no trend model.
func (w *Writer) Load(_ context.Context, report domain.Report) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	files := map[string][][]string{
		domain.SectionTimeOfDay:         countRecords("time_range", report.TimeOfDay),
		domain.SectionAgeGroups:         countRecords("age_group", report.AgeGroups),
		domain.SectionAgeGroupsFiltered: countRecords("age_group", report.FilteredAgeGroups),
	}
	if report.Trend != nil {
		files[domain.SectionTrend] = trendRecords(*report.Trend)
	}

	for _, section := range []string{
		domain.SectionTimeOfDay,
		domain.SectionAgeGroups,
		domain.SectionAgeGroupsFiltered,
		domain.SectionTrend,
	} {
		records, ok := files[section]
		if !ok {
			continue
		}
		path := filepath.Join(w.dir, section+".csv")
		if err := writeFile(path, records); err != nil {
			return err
		}
		w.logger.Debug("csv section written", "path", path, "rows", len(records)-1)
	}
	w.logger.Info("report exported", "dir", w.dir, "files", len(files))
	return nil
}

func countRecords(header string, rows []domain.CountRow) [][]string {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{header, "count"})
	for _, r := range rows {
		records = append(records, []string{r.Category, strconv.Itoa(r.Count)})
	}
	return records
}

func trendRecords(m domain.TrendModel) [][]string {
	records := make([][]string, 0, len(m.Points)+1)
	records = append(records, []string{"ordinal", "age_group", "count", "predicted"})
	for _, p := range m.Points {
		records = append(records, []string{
			strconv.Itoa(p.Ordinal),
			p.Category,
			strconv.Itoa(p.Count),
			strconv.FormatFloat(p.Predicted, 'f', 4, 64),
		})
	}
	return records
}

func writeFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write %q: %w", path, err)
	}
	return f.Close()
}
