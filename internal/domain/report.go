package domain

import "time"

// Section names identify the parts of a report when it is exported.
const (
	SectionTimeOfDay         = "time_of_day"
	SectionAgeGroups         = "age_groups"
	SectionAgeGroupsFiltered = "age_groups_filtered"
	SectionTrend             = "trend"
)

// RunStats counts the rows each tolerance removed along the way.
type RunStats struct {
	RawRows               int      `json:"raw_rows"`
	DateFailures          int      `json:"date_failures"`
	TimeSkipped           int      `json:"time_skipped"`
	BlankAgeGroups        int      `json:"blank_age_groups"`
	FilteredAgeGroups     int      `json:"filtered_age_groups"`
	UnrecognizedAgeGroups []string `json:"unrecognized_age_groups,omitempty"`
}

// Report is the output of one pipeline run.
type Report struct {
	GeneratedAt       time.Time   `json:"generated_at"`
	Source            string      `json:"source"`
	FilterMode        FilterMode  `json:"filter_mode"`
	Columns           []string    `json:"columns"`
	Preview           []Incident  `json:"preview"`
	TimeOfDay         []CountRow  `json:"time_of_day"`
	AgeGroups         []CountRow  `json:"age_groups"`
	FilteredAgeGroups []CountRow  `json:"age_groups_filtered"`
	Trend             *TrendModel `json:"trend,omitempty"` // nil when fewer than two categories survive filtering
	Stats             RunStats    `json:"stats"`
}

// ReportOptions tunes BuildReport.
type ReportOptions struct {
	Source      string
	Filter      AgeGroupFilter
	PreviewRows int
}

// BuildReport runs every aggregation over a cleaned table. The trend error is
// returned alongside a usable report when the trend cannot be fitted.
func BuildReport(table CleanedTable, opts ReportOptions) (Report, error) {
	timeRows, skipped := CountByTimeRange(table.Incidents)

	ages := AgeGroups(table.Incidents)
	raw := CountByCategory(ages, nil)
	filtered := CountByCategory(ages, opts.Filter.Keep)

	preview := table.Incidents
	if opts.PreviewRows >= 0 && len(preview) > opts.PreviewRows {
		preview = preview[:opts.PreviewRows]
	}

	mode := opts.Filter.Mode
	if mode == "" {
		mode = FilterDenylist
	}

	report := Report{
		GeneratedAt:       clock.Now().UTC(),
		Source:            opts.Source,
		FilterMode:        mode,
		Columns:           table.Columns,
		Preview:           preview,
		TimeOfDay:         timeRows,
		AgeGroups:         raw,
		FilteredAgeGroups: filtered,
		Stats: RunStats{
			RawRows:               len(table.Incidents),
			DateFailures:          table.DateFailures,
			TimeSkipped:           skipped,
			BlankAgeGroups:        len(table.Incidents) - TotalCount(raw),
			FilteredAgeGroups:     TotalCount(raw) - TotalCount(filtered),
			UnrecognizedAgeGroups: UnrecognizedAgeGroups(filtered),
		},
	}

	trend, err := FitTrend(filtered)
	if err != nil {
		return report, err
	}
	report.Trend = &trend
	return report, nil
}
