package csvexport

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func testReport() domain.Report {
	return domain.Report{
		TimeOfDay: []domain.CountRow{
			{Category: "late-night", Count: 6},
			{Category: "morning", Count: 4},
			{Category: "afternoon", Count: 5},
			{Category: "evening", Count: 7},
		},
		AgeGroups:         []domain.CountRow{{Category: "25-44", Count: 6}, {Category: "(null)", Count: 1}},
		FilteredAgeGroups: []domain.CountRow{{Category: "25-44", Count: 6}},
	}
}

func TestWriter_Load(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	report := testReport()
	report.Trend = &domain.TrendModel{
		Points: []domain.TrendPoint{
			{Category: "18-24", Ordinal: 0, Count: 5, Predicted: 5},
			{Category: "25-44", Ordinal: 1, Count: 6, Predicted: 6},
		},
		Slope: 1, Intercept: 5, Correlation: 1,
	}

	w := NewWriter(dir, discardLogger())
	assert.Equal(t, "csv", w.Name())
	require.NoError(t, w.Load(context.Background(), report))

	assert.Equal(t, [][]string{
		{"time_range", "count"},
		{"late-night", "6"},
		{"morning", "4"},
		{"afternoon", "5"},
		{"evening", "7"},
	}, readCSV(t, filepath.Join(dir, "time_of_day.csv")))

	assert.Equal(t, [][]string{
		{"age_group", "count"},
		{"25-44", "6"},
		{"(null)", "1"},
	}, readCSV(t, filepath.Join(dir, "age_groups.csv")))

	assert.Equal(t, [][]string{
		{"age_group", "count"},
		{"25-44", "6"},
	}, readCSV(t, filepath.Join(dir, "age_groups_filtered.csv")))

	assert.Equal(t, [][]string{
		{"ordinal", "age_group", "count", "predicted"},
		{"0", "18-24", "5", "5.0000"},
		{"1", "25-44", "6", "6.0000"},
	}, readCSV(t, filepath.Join(dir, "trend.csv")))
}

func TestWriter_Load_NoTrend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, discardLogger()).Load(context.Background(), testReport()))

	assert.FileExists(t, filepath.Join(dir, "time_of_day.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "trend.csv"))
}

func TestWriter_Load_Truncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "age_groups_filtered.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale,data\nmore,stale\nrows,here\n"), 0o644))

	require.NoError(t, NewWriter(dir, discardLogger()).Load(context.Background(), testReport()))
	assert.Len(t, readCSV(t, path), 2)
}

func TestWriter_Load_DirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := NewWriter(file, discardLogger()).Load(context.Background(), testReport())
	require.Error(t, err)
}
