package domain

import (
	"sort"
	"strings"
)

// CountByTimeRange counts incidents per time-of-day bucket. Every bucket is
// present, in report order, even with a zero count. skipped is the number of
// incidents whose time was blank or unparseable.
func CountByTimeRange(incidents []Incident) (rows []CountRow, skipped int) {
	counts := make([]int, len(TimeRanges))
	for _, inc := range incidents {
		d, ok := ParseTimeOfDay(inc.OccurTime)
		if !ok {
			skipped++
			continue
		}
		counts[ClassifyTimeOfDay(d)]++
	}

	rows = make([]CountRow, len(TimeRanges))
	for i, r := range TimeRanges {
		rows[i] = CountRow{Category: r.String(), Count: counts[r]}
	}
	return rows, skipped
}

// CountByCategory counts occurrences of each non-blank value, sorted by count
// descending. Ties keep first-appearance order. When keep is non-nil, values
// it rejects are discarded before counting. Values are trimmed.
func CountByCategory(values []string, keep func(string) bool) []CountRow {
	index := make(map[string]int)
	var rows []CountRow
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if keep != nil && !keep(v) {
			continue
		}
		if i, ok := index[v]; ok {
			rows[i].Count++
			continue
		}
		index[v] = len(rows)
		rows = append(rows, CountRow{Category: v, Count: 1})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}
