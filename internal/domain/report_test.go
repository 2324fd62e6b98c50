package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	fixed := time.Date(2024, time.March, 2, 9, 15, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	table := CleanedTable{
		Columns: []string{ColumnOccurDate, ColumnOccurTime, ColumnPerpAgeGroup},
		Incidents: []Incident{
			{Row: 0, OccurTime: "05:59:59", PerpAgeGroup: "25-44"},
			{Row: 1, OccurTime: "06:00:00", PerpAgeGroup: "25-44"},
			{Row: 2, OccurTime: "11:59:59", PerpAgeGroup: "UNKNOWN"},
			{Row: 3, OccurTime: "23:59:59", PerpAgeGroup: "1020"},
			{Row: 4, OccurTime: "", PerpAgeGroup: "18-24"},
			{Row: 5, OccurTime: "13:00:00", PerpAgeGroup: ""},
			{Row: 6, OccurTime: "14:00:00", PerpAgeGroup: "999"},
		},
		DateFailures: 2,
	}

	report, err := BuildReport(table, ReportOptions{Source: "fixture", PreviewRows: 3})
	require.NoError(t, err)

	assert.Equal(t, fixed, report.GeneratedAt)
	assert.Equal(t, "fixture", report.Source)
	assert.Equal(t, FilterDenylist, report.FilterMode)
	assert.Len(t, report.Preview, 3)

	assert.Equal(t, []CountRow{
		{"late-night", 1}, {"morning", 2}, {"afternoon", 2}, {"evening", 1},
	}, report.TimeOfDay)
	assert.Equal(t, []CountRow{
		{"25-44", 2}, {"UNKNOWN", 1}, {"1020", 1}, {"18-24", 1}, {"999", 1},
	}, report.AgeGroups)
	assert.Equal(t, []CountRow{
		{"25-44", 2}, {"18-24", 1}, {"999", 1},
	}, report.FilteredAgeGroups)

	assert.Equal(t, RunStats{
		RawRows:               7,
		DateFailures:          2,
		TimeSkipped:           1,
		BlankAgeGroups:        1,
		FilteredAgeGroups:     2,
		UnrecognizedAgeGroups: []string{"999"},
	}, report.Stats)

	require.NotNil(t, report.Trend)
	assert.Len(t, report.Trend.Points, 3)
}

func TestBuildReport_AllowlistLeavesTooFewCategories(t *testing.T) {
	table := CleanedTable{
		Incidents: []Incident{
			{OccurTime: "01:00:00", PerpAgeGroup: "25-44"},
			{OccurTime: "02:00:00", PerpAgeGroup: "999"},
		},
	}

	report, err := BuildReport(table, ReportOptions{Filter: AgeGroupFilter{Mode: FilterAllowlist}, PreviewRows: 10})
	require.ErrorIs(t, err, ErrInsufficientData)

	assert.Nil(t, report.Trend)
	assert.Equal(t, FilterAllowlist, report.FilterMode)
	assert.Equal(t, []CountRow{{"25-44", 1}}, report.FilteredAgeGroups)
	assert.Empty(t, report.Stats.UnrecognizedAgeGroups)
	assert.Len(t, report.Preview, 2)
}
