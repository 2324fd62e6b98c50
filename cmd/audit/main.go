// Command audit checks an incident dataset for the data-quality defects the
// report tolerates: missing columns, unparseable dates and times, and age
// group labels that survive filtering without being valid brackets.
//
// Usage:
//
//	go run ./cmd/audit -dataset data/mock/incidents_sample.csv -filter allowlist
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/incident-report/internal/adapter/opendata"
	"github.com/couchcryptid/incident-report/internal/config"
	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
)

func main() {
	dataset := flag.String("dataset", config.DefaultDatasetURL, "dataset URL or local CSV path")
	filter := flag.String("filter", string(domain.FilterDenylist), "age group filter: denylist or allowlist")
	timeout := flag.Duration("timeout", 60*time.Second, "fetch timeout for remote datasets")
	maxErrors := flag.Int("max-errors", 20, "errors printed per failing phase")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	mode, err := domain.ParseFilterMode(*filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(2)
	}

	os.Exit(run(*dataset, mode, *timeout, *maxErrors, *logLevel, os.Stdout))
}

func run(dataset string, mode domain.FilterMode, timeout time.Duration, maxErrors int, logLevel string, out io.Writer) int {
	logger := observability.NewLogger(logLevel, "text")
	source := opendata.NewSource(dataset, timeout, observability.NewMetricsForTesting(), logger)

	fmt.Fprintln(out, "=== Incident Dataset Audit ===")
	fmt.Fprintf(out, "Dataset: %s\nFilter:  %s\n\n", source.Source(), mode)

	raw, err := source.Extract(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
		return 1
	}

	phases := audit(raw, domain.AgeGroupFilter{Mode: mode})
	if report(out, phases, len(raw.Rows), maxErrors) {
		return 0
	}
	return 1
}

// report prints the phase summary and details and reports whether every
// phase passed.
func report(out io.Writer, phases []*phase, rows, maxErrors int) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintf(out, "\nRecords: %d\n", rows)

	for _, p := range phases {
		if p.passed() && len(p.notes) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for _, n := range p.notes {
			fmt.Fprintf(out, "  note: %s\n", n)
		}
		for i, e := range p.errors {
			if i == maxErrors {
				fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxErrors)
				break
			}
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll checks passed.")
		return true
	}
	fmt.Fprintln(out, "\nAudit FAILED.")
	return false
}
