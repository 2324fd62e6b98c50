package opendata

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/incident-report/internal/observability"
	"github.com/couchcryptid/incident-report/internal/pipeline"
)

// NewSource picks the HTTP client for http(s) locations and a FileSource
// for everything else ("file://" prefixes are stripped).
func NewSource(location string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) pipeline.Extractor {
	if u, err := url.Parse(location); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return NewClient(location, timeout, metrics, logger)
		case "file":
			return NewFileSource(u.Path, metrics, logger)
		}
	}
	return NewFileSource(location, metrics, logger)
}
