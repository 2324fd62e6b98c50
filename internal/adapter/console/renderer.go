// Package console renders a report as plain-text tables and bar charts.
package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/incident-report/internal/domain"
)

const (
	defaultBarWidth = 40
	noDate          = "-"
)

// Renderer writes reports to an io.Writer.
// It implements pipeline.Loader.
type Renderer struct {
	out      io.Writer
	barWidth int
}

// NewRenderer creates a Renderer that writes to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, barWidth: defaultBarWidth}
}

func (r *Renderer) Name() string { return "console" }

// Load renders the report. Output is buffered so a failed write never leaves
// half a report behind.
func (r *Renderer) Load(_ context.Context, report domain.Report) error {
	var buf bytes.Buffer
	r.render(&buf, report)
	if _, err := r.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (r *Renderer) render(w *bytes.Buffer, report domain.Report) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)

	fmt.Fprintf(w, "%s\n  INCIDENT REPORT\n%s\n", sep, sep)
	fmt.Fprintf(w, "  Source       : %s\n", report.Source)
	fmt.Fprintf(w, "  Generated at : %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "  Rows         : %d (%d undated)\n", report.Stats.RawRows, report.Stats.DateFailures)
	fmt.Fprintf(w, "  Filter       : %s\n\n", report.FilterMode)

	section(w, fmt.Sprintf("Cleaned data (first %d rows)", len(report.Preview)), thin)
	writePreview(w, report.Columns, report.Preview)

	section(w, "Incidents by time of day", thin)
	writeCounts(w, "TIME RANGE", report.TimeOfDay)
	fmt.Fprintf(w, "  (%d rows without a usable time)\n\n", report.Stats.TimeSkipped)
	r.writeBars(w, report.TimeOfDay)

	section(w, "Incidents by perpetrator age group", thin)
	writeCounts(w, "AGE GROUP", report.AgeGroups)
	fmt.Fprintf(w, "  (%d rows without an age group)\n\n", report.Stats.BlankAgeGroups)
	r.writeBars(w, report.AgeGroups)

	section(w, fmt.Sprintf("Incidents by perpetrator age group, filtered (%s)", report.FilterMode), thin)
	writeCounts(w, "AGE GROUP", report.FilteredAgeGroups)
	fmt.Fprintf(w, "  (%d rows removed by the filter)\n", report.Stats.FilteredAgeGroups)
	if len(report.Stats.UnrecognizedAgeGroups) > 0 {
		fmt.Fprintf(w, "  warning: unrecognized labels survived: %s\n", strings.Join(report.Stats.UnrecognizedAgeGroups, ", "))
	}
	fmt.Fprintln(w)
	r.writeBars(w, report.FilteredAgeGroups)

	section(w, "Trend: count by age-group ordinal", thin)
	if report.Trend == nil {
		fmt.Fprintf(w, "  not enough categories to fit a trend\n\n")
	} else {
		r.writeTrend(w, *report.Trend)
	}
	fmt.Fprintf(w, "%s\n", sep)
}

func section(w io.Writer, title, rule string) {
	fmt.Fprintf(w, "  %s\n  %s\n", title, rule)
}

func writePreview(w io.Writer, columns []string, preview []domain.Incident) {
	if len(preview) == 0 {
		fmt.Fprintf(w, "  no rows\n\n")
		return
	}
	dateCol := -1
	for i, c := range columns {
		if c == domain.ColumnOccurDate {
			dateCol = i
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.Join(columns, "\t"))
	for _, inc := range preview {
		cells := make([]string, len(columns))
		copy(cells, inc.Values)
		if dateCol >= 0 {
			cells[dateCol] = noDate
			if inc.HasDate() {
				cells[dateCol] = inc.OccurDate.Format("2006-01-02")
			}
		}
		fmt.Fprintf(tw, "  %s\n", strings.Join(cells, "\t"))
	}
	tw.Flush() //nolint:errcheck // bytes.Buffer writes do not fail
	fmt.Fprintln(w)
}

func writeCounts(w io.Writer, header string, rows []domain.CountRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "  %s\tCOUNT\t\n", header)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%d\t\n", row.Category, row.Count)
	}
	fmt.Fprintf(tw, "  TOTAL\t%d\t\n", domain.TotalCount(rows))
	tw.Flush() //nolint:errcheck // bytes.Buffer writes do not fail
}

func (r *Renderer) writeBars(w io.Writer, rows []domain.CountRow) {
	maxCount := 0
	labelWidth := 0
	for _, row := range rows {
		maxCount = max(maxCount, row.Count)
		labelWidth = max(labelWidth, len(row.Category))
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-*s %s %d\n", labelWidth, row.Category, bar(float64(row.Count), float64(maxCount), r.barWidth), row.Count)
	}
	fmt.Fprintln(w)
}

func (r *Renderer) writeTrend(w io.Writer, m domain.TrendModel) {
	maxCount := 0.0
	labelWidth := 0
	for _, p := range m.Points {
		maxCount = math.Max(maxCount, math.Max(float64(p.Count), p.Predicted))
		labelWidth = max(labelWidth, len(p.Category))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  ORDINAL\tAGE GROUP\tACTUAL\tPREDICTED\n")
	for _, p := range m.Points {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%.2f\n", p.Ordinal, p.Category, p.Count, p.Predicted)
	}
	tw.Flush() //nolint:errcheck // bytes.Buffer writes do not fail
	fmt.Fprintln(w)

	// Actual counts as bars, the fitted line as a marker on the same scale.
	for _, p := range m.Points {
		line := []rune(fmt.Sprintf("%-*s", r.barWidth+1, bar(float64(p.Count), maxCount, r.barWidth)))
		if pos := scale(p.Predicted, maxCount, r.barWidth); p.Predicted > 0 && pos < len(line) {
			line[pos] = '|'
		}
		fmt.Fprintf(w, "  %d %-*s %s\n", p.Ordinal, labelWidth, p.Category, strings.TrimRight(string(line), " "))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  count = %.4f * ordinal %+.4f\n", m.Slope, m.Intercept)
	fmt.Fprintf(w, "  correlation (actual vs predicted): %.4f\n\n", m.Correlation)
}

// bar draws v as a run of blocks scaled so that maxV fills width.
func bar(v, maxV float64, width int) string {
	return strings.Repeat("█", scale(v, maxV, width))
}

func scale(v, maxV float64, width int) int {
	if maxV <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / maxV * float64(width)))
	return min(n, width)
}
