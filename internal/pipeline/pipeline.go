package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
)

// Extractor loads the raw dataset.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawTable, error)
	Source() string
}

// Transformer turns the raw dataset into a report.
type Transformer interface {
	Transform(ctx context.Context, source string, raw domain.RawTable) (domain.Report, error)
}

// Loader delivers a finished report somewhere.
type Loader interface {
	Name() string
	Load(ctx context.Context, report domain.Report) error
}

// Pipeline orchestrates one extract-transform-load run.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loaders     []Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool

	mu     sync.RWMutex
	latest domain.Report
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loaders:     loaders,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once a report has been produced.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no report has been generated yet")
	}
	return nil
}

// LatestReport returns the most recent report and whether one exists.
func (p *Pipeline) LatestReport() (domain.Report, bool) {
	if !p.ready.Load() {
		return domain.Report{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, true
}

// Run executes a single report run. Extract and transform errors abort the
// run. Every loader is attempted; their errors are joined and returned along
// with the report.
func (p *Pipeline) Run(ctx context.Context) (domain.Report, error) {
	p.logger.Info("pipeline started", "source", p.extractor.Source(), "loaders", len(p.loaders))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	start := time.Now()

	raw, err := p.extractor.Extract(ctx)
	if err != nil {
		return domain.Report{}, fmt.Errorf("extract: %w", err)
	}
	p.metrics.RowsLoaded.Add(float64(len(raw.Rows)))

	report, err := p.transformer.Transform(ctx, p.extractor.Source(), raw)
	if err != nil {
		return domain.Report{}, fmt.Errorf("transform: %w", err)
	}

	p.mu.Lock()
	p.latest = report
	p.mu.Unlock()
	p.ready.Store(true)

	loadErr := p.load(ctx, report)

	p.metrics.ReportsGenerated.Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("pipeline finished", "rows", report.Stats.RawRows, "duration", time.Since(start))
	return report, loadErr
}

func (p *Pipeline) load(ctx context.Context, report domain.Report) error {
	var errs []error
	for _, l := range p.loaders {
		if err := l.Load(ctx, report); err != nil {
			p.logger.Error("load report failed", "loader", l.Name(), "error", err)
			p.metrics.SinkErrors.WithLabelValues(l.Name()).Inc()
			errs = append(errs, fmt.Errorf("load %s: %w", l.Name(), err))
			continue
		}
		p.logger.Debug("report loaded", "loader", l.Name())
	}
	return errors.Join(errs...)
}
