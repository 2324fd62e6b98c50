package domain

import "time"

// Column names used downstream of the cleaner.
const (
	ColumnIncidentKey  = "INCIDENT_KEY"
	ColumnOccurDate    = "OCCUR_DATE"
	ColumnOccurTime    = "OCCUR_TIME"
	ColumnPerpAgeGroup = "PERP_AGE_GROUP"
)

// RawTable is the CSV export as loaded, header plus rows in file order.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Incident is one cleaned dataset row.
type Incident struct {
	Row          int       `json:"row"`
	OccurDate    time.Time `json:"occur_date,omitzero"` // zero when the source date did not parse
	OccurTime    string    `json:"occur_time"`
	PerpAgeGroup string    `json:"perp_age_group"`
	Values       []string  `json:"values"` // aligned with CleanedTable.Columns
}

// HasDate reports whether the row carried a parseable occurrence date.
func (i Incident) HasDate() bool {
	return !i.OccurDate.IsZero()
}

// CleanedTable is a RawTable with irrelevant columns removed and dates parsed.
// It has the same row count and order as its source.
type CleanedTable struct {
	Columns      []string
	Incidents    []Incident
	DateFailures int
}

// CountRow is one (category, count) pair of an aggregation.
type CountRow struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TotalCount sums the counts of an aggregation.
func TotalCount(rows []CountRow) int {
	n := 0
	for _, r := range rows {
		n += r.Count
	}
	return n
}
