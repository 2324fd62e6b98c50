package opendata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

// Client downloads the incident dataset over HTTP.
// It implements pipeline.Extractor.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a dataset client whose whole request, body included, is bounded by timeout.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Source returns the dataset URL.
func (c *Client) Source() string {
	return c.url
}

// Extract fetches and parses the dataset. Any transport, status, or CSV error
// fails the whole load; there is no retry and no partial table.
func (c *Client) Extract(ctx context.Context) (domain.RawTable, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.RawTable{}, fmt.Errorf("fetch dataset: status %d: %s", resp.StatusCode, body)
	}

	table, err := ParseCSV(resp.Body)
	if err != nil {
		return domain.RawTable{}, err
	}

	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	c.logger.Info("dataset downloaded",
		"url", c.url,
		"rows", len(table.Rows),
		"columns", len(table.Columns),
		"duration", time.Since(start),
	)
	return table, nil
}
