package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/couchcryptid/incident-report/internal/domain"
)

// phase tracks pass/fail for an audit phase. Notes are informational and
// never fail the phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// lineNum converts a 0-based data row to its 1-based CSV line, header included.
func lineNum(row int) int { return row + 2 }

func audit(raw domain.RawTable, filter domain.AgeGroupFilter) []*phase {
	schema := auditSchema(raw)
	if !schema.passed() {
		return []*phase{schema}
	}

	cleaned, err := domain.Clean(raw)
	if err != nil {
		schema.errorf("%v", err)
		return []*phase{schema}
	}

	return []*phase{
		schema,
		auditDates(cleaned),
		auditTimes(cleaned),
		auditAgeGroups(cleaned, filter),
		auditTotals(cleaned, filter),
	}
}

// ── Phase 1: Schema ──

func auditSchema(raw domain.RawTable) *phase {
	p := &phase{name: "Phase 1: Schema"}

	for _, c := range []string{domain.ColumnOccurDate, domain.ColumnOccurTime, domain.ColumnPerpAgeGroup} {
		if raw.ColumnIndex(c) < 0 {
			p.errorf("required column %q is missing", c)
		}
	}
	if raw.ColumnIndex(domain.ColumnIncidentKey) < 0 {
		p.notef("column %q is missing; rows are identified by line only", domain.ColumnIncidentKey)
	}

	var absent []string
	for _, c := range domain.DroppedColumns {
		if raw.ColumnIndex(c) < 0 {
			absent = append(absent, c)
		}
	}
	if len(absent) > 0 {
		p.notef("dropped columns not present: %s", strings.Join(absent, ", "))
	}

	width := len(raw.Columns)
	for i, row := range raw.Rows {
		if len(row) != width {
			p.errorf("line %d: %d fields, header has %d", lineNum(i), len(row), width)
		}
	}
	return p
}

// ── Phase 2: Dates ──

func auditDates(t domain.CleanedTable) *phase {
	p := &phase{name: "Phase 2: Occurrence dates"}

	col := slices.Index(t.Columns, domain.ColumnOccurDate)
	blank := 0
	for _, inc := range t.Incidents {
		if inc.HasDate() {
			continue
		}
		v := strings.TrimSpace(inc.Values[col])
		if v == "" {
			blank++
			continue
		}
		p.errorf("line %d: unparseable %s %q", lineNum(inc.Row), domain.ColumnOccurDate, v)
	}
	if blank > 0 {
		p.notef("%d rows have a blank date", blank)
	}
	return p
}

// ── Phase 3: Times ──

func auditTimes(t domain.CleanedTable) *phase {
	p := &phase{name: "Phase 3: Occurrence times"}

	blank := 0
	for _, inc := range t.Incidents {
		v := strings.TrimSpace(inc.OccurTime)
		if v == "" {
			blank++
			continue
		}
		if _, ok := domain.ParseTimeOfDay(v); !ok {
			p.errorf("line %d: unparseable %s %q", lineNum(inc.Row), domain.ColumnOccurTime, v)
		}
	}
	if blank > 0 {
		p.notef("%d rows have a blank time", blank)
	}
	return p
}

// ── Phase 4: Age groups ──

func auditAgeGroups(t domain.CleanedTable, filter domain.AgeGroupFilter) *phase {
	p := &phase{name: "Phase 4: Perpetrator age groups"}

	ages := domain.AgeGroups(t.Incidents)
	filtered := domain.CountByCategory(ages, filter.Keep)
	for _, r := range filtered {
		if !slices.Contains(domain.KnownAgeGroups, r.Category) {
			p.errorf("label %q (%d rows) survives the %s filter but is not a valid age group", r.Category, r.Count, modeName(filter))
		}
	}

	var removed []string
	for _, r := range domain.CountByCategory(ages, nil) {
		if !filter.Keep(r.Category) {
			removed = append(removed, fmt.Sprintf("%s:%d", r.Category, r.Count))
		}
	}
	if len(removed) > 0 {
		p.notef("removed by the %s filter: %s", modeName(filter), strings.Join(removed, ", "))
	}
	return p
}

func modeName(f domain.AgeGroupFilter) domain.FilterMode {
	if f.Mode == "" {
		return domain.FilterDenylist
	}
	return f.Mode
}

// ── Phase 5: Totals ──
// Cross-checks the aggregation totals against the row count.

func auditTotals(t domain.CleanedTable, filter domain.AgeGroupFilter) *phase {
	p := &phase{name: "Phase 5: Aggregation totals"}

	rows := len(t.Incidents)
	timeRows, skipped := domain.CountByTimeRange(t.Incidents)
	if got := domain.TotalCount(timeRows) + skipped; got != rows {
		p.errorf("time-of-day buckets plus skipped rows = %d, want %d", got, rows)
	}

	ages := domain.AgeGroups(t.Incidents)
	blank := 0
	for _, a := range ages {
		if strings.TrimSpace(a) == "" {
			blank++
		}
	}
	rawTotal := domain.TotalCount(domain.CountByCategory(ages, nil))
	if rawTotal+blank != rows {
		p.errorf("age group counts plus blanks = %d, want %d", rawTotal+blank, rows)
	}

	filteredTotal := domain.TotalCount(domain.CountByCategory(ages, filter.Keep))
	if filteredTotal > rawTotal {
		p.errorf("filtered age group total %d exceeds unfiltered total %d", filteredTotal, rawTotal)
	}
	p.notef("time of day: %d counted, %d skipped; age groups: %d counted, %d after filtering",
		domain.TotalCount(timeRows), skipped, rawTotal, filteredTotal)
	return p
}
