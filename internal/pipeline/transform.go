package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
)

// ReportTransformer implements Transformer using the domain cleaning and
// aggregation functions.
type ReportTransformer struct {
	filter      domain.AgeGroupFilter
	previewRows int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewTransformer creates a ReportTransformer.
func NewTransformer(filter domain.AgeGroupFilter, previewRows int, logger *slog.Logger, metrics *observability.Metrics) *ReportTransformer {
	return &ReportTransformer{
		filter:      filter,
		previewRows: previewRows,
		logger:      logger,
		metrics:     metrics,
	}
}

func (t *ReportTransformer) Transform(_ context.Context, source string, raw domain.RawTable) (domain.Report, error) {
	cleaned, err := domain.Clean(raw)
	if err != nil {
		return domain.Report{}, err
	}
	t.metrics.DateParseFailures.Add(float64(cleaned.DateFailures))
	t.logger.Info("dataset cleaned",
		"rows", len(cleaned.Incidents),
		"columns", len(cleaned.Columns),
		"date_failures", cleaned.DateFailures,
	)

	report, err := domain.BuildReport(cleaned, domain.ReportOptions{
		Source:      source,
		Filter:      t.filter,
		PreviewRows: t.previewRows,
	})
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		t.logger.Warn("trend model skipped", "error", err)
	case err != nil:
		return domain.Report{}, err
	}

	stats := report.Stats
	t.metrics.TimeSkipped.Add(float64(stats.TimeSkipped))
	t.metrics.AgeGroupsDiscarded.WithLabelValues("blank").Add(float64(stats.BlankAgeGroups))
	t.metrics.AgeGroupsDiscarded.WithLabelValues("filtered").Add(float64(stats.FilteredAgeGroups))
	t.metrics.UnrecognizedLabels.Set(float64(len(stats.UnrecognizedAgeGroups)))

	if len(stats.UnrecognizedAgeGroups) > 0 {
		t.logger.Warn("unrecognized age groups survived filtering",
			"filter", report.FilterMode,
			"labels", stats.UnrecognizedAgeGroups,
		)
	}
	t.logger.Info("report aggregated",
		"time_skipped", stats.TimeSkipped,
		"blank_age_groups", stats.BlankAgeGroups,
		"filtered_age_groups", stats.FilteredAgeGroups,
	)
	return report, nil
}
