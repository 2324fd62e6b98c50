package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrMissingColumn is returned when a column the report depends on is absent.
var ErrMissingColumn = errors.New("missing required column")

// DroppedColumns are the jurisdiction and coordinate columns the report never uses.
var DroppedColumns = []string{
	"PRECINCT",
	"JURISDICTION_CODE",
	"X_COORD_CD",
	"Y_COORD_CD",
	"Latitude",
	"Longitude",
	"Lon_Lat",
}

// occurDateLayouts are tried in order; "1/2/2006" also accepts zero-padded input.
var occurDateLayouts = []string{"1/2/2006", "2006-01-02"}

// DropColumns returns a copy of t without the named columns. Names that are
// not present are ignored. Row count and order are unchanged.
func DropColumns(t RawTable, names []string) RawTable {
	keep := make([]int, 0, len(t.Columns))
	columns := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if slices.Contains(names, c) {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, c)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(keep))
		for j, idx := range keep {
			if idx < len(row) {
				out[j] = row[idx]
			}
		}
		rows[r] = out
	}
	return RawTable{Columns: columns, Rows: rows}
}

// ParseOccurDate parses a month/day/year date. It returns false, and the zero
// time, for anything it cannot parse completely.
func ParseOccurDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range occurDateLayouts {
		if d, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Clean drops DroppedColumns and parses the occurrence date of every row.
// Date failures are counted, not fatal: the row keeps a zero date.
func Clean(t RawTable) (CleanedTable, error) {
	dropped := DropColumns(t, DroppedColumns)

	required := []string{ColumnOccurDate, ColumnOccurTime, ColumnPerpAgeGroup}
	idx := make([]int, len(required))
	for i, name := range required {
		idx[i] = dropped.ColumnIndex(name)
		if idx[i] < 0 {
			return CleanedTable{}, fmt.Errorf("clean: %w: %s", ErrMissingColumn, name)
		}
	}
	dateIdx, timeIdx, ageIdx := idx[0], idx[1], idx[2]

	cleaned := CleanedTable{
		Columns:   dropped.Columns,
		Incidents: make([]Incident, len(dropped.Rows)),
	}
	for r, row := range dropped.Rows {
		date, ok := ParseOccurDate(row[dateIdx])
		if !ok {
			cleaned.DateFailures++
		}
		cleaned.Incidents[r] = Incident{
			Row:          r,
			OccurDate:    date,
			OccurTime:    row[timeIdx],
			PerpAgeGroup: row[ageIdx],
			Values:       row,
		}
	}
	return cleaned, nil
}
