package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/incident-report/internal/adapter/console"
	"github.com/couchcryptid/incident-report/internal/adapter/csvexport"
	"github.com/couchcryptid/incident-report/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/incident-report/internal/adapter/kafka"
	"github.com/couchcryptid/incident-report/internal/adapter/opendata"
	"github.com/couchcryptid/incident-report/internal/config"
	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/couchcryptid/incident-report/internal/observability"
	"github.com/couchcryptid/incident-report/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	source := opendata.NewSource(cfg.DatasetURL, cfg.FetchTimeout, metrics, logger)
	transformer := pipeline.NewTransformer(domain.AgeGroupFilter{Mode: cfg.AgeGroupFilter}, cfg.PreviewRows, logger, metrics)

	loaders := []pipeline.Loader{console.NewRenderer(os.Stdout)}
	if cfg.OutputDir != "" {
		loaders = append(loaders, csvexport.NewWriter(cfg.OutputDir, logger))
		logger.Info("csv export enabled", "dir", cfg.OutputDir)
	}
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}
	defer func() {
		if writer == nil {
			return
		}
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}()

	p := pipeline.New(source, transformer, loaders, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.HTTPAddr == "" {
		if _, err := p.Run(ctx); err != nil {
			logger.Error("report run failed", "error", err)
			return 1
		}
		return 0
	}

	// Serve mode: the server is up before the run so /readyz reflects progress,
	// and stays up afterwards until a signal arrives.
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	code := 0
	if _, err := p.Run(ctx); err != nil {
		logger.Error("report run failed", "error", err)
		code = 1
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return code
}
