package opendata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("strips BOM and header whitespace", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("\ufeffINCIDENT_KEY, OCCUR_DATE \n1,01/01/2020\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"INCIDENT_KEY", "OCCUR_DATE"}, table.Columns)
	})

	t.Run("pads short rows", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("A,B,C\n1\n1,2,3\n"))
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"1", "", ""}, table.Rows[0])
		assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1])
	})

	t.Run("quoted fields with commas", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("A,Lon_Lat\n1,\"POINT (-73.9, 40.8)\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "POINT (-73.9, 40.8)", table.Rows[0][1])
	})

	t.Run("header only", func(t *testing.T) {
		table, err := ParseCSV(strings.NewReader("A,B\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		require.ErrorIs(t, err, ErrEmptyDataset)
	})
}

func TestFileSource_Extract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	src := NewFileSource(path, observability.NewMetricsForTesting(), discardLogger())
	table, err := src.Extract(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, path, src.Source())
}

func TestFileSource_Extract_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.csv"), observability.NewMetricsForTesting(), discardLogger())
	_, err := src.Extract(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_Extract_MockFixture(t *testing.T) {
	path := filepath.Join("..", "..", "..", "data", "mock", "incidents_sample.csv")
	src := NewFileSource(path, observability.NewMetricsForTesting(), discardLogger())

	table, err := src.Extract(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(table.Rows), 20)
	assert.GreaterOrEqual(t, table.ColumnIndex(domain.ColumnPerpAgeGroup), 0)
	assert.GreaterOrEqual(t, table.ColumnIndex("JURISDICTION_CODE"), 0)
}
