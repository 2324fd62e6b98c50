package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/incident-report/internal/domain"
)

// DefaultDatasetURL is the NYC Open Data export of NYPD shooting incidents.
const DefaultDatasetURL = "https://data.cityofnewyork.us/api/views/833y-fsy8/rows.csv?accessType=DOWNLOAD"

// Config holds all report settings, populated from environment variables.
type Config struct {
	DatasetURL     string
	FetchTimeout   time.Duration
	AgeGroupFilter domain.FilterMode
	PreviewRows    int
	OutputDir      string

	// Optional Kafka publishing of report sections. Disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string

	// HTTPAddr keeps the process serving /report and /metrics after the run when set.
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// KafkaEnabled reports whether report sections should be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
// A .env file in the working directory is read first when present; it never
// overrides variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "60s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	filter, err := domain.ParseFilterMode(sharedcfg.EnvOrDefault("AGE_GROUP_FILTER", string(domain.FilterDenylist)))
	if err != nil {
		return nil, fmt.Errorf("invalid AGE_GROUP_FILTER: %w", err)
	}

	previewRows, err := strconv.Atoi(sharedcfg.EnvOrDefault("PREVIEW_ROWS", "5"))
	if err != nil || previewRows < 0 {
		return nil, errors.New("invalid PREVIEW_ROWS")
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		DatasetURL:      strings.TrimSpace(sharedcfg.EnvOrDefault("DATASET_URL", DefaultDatasetURL)),
		FetchTimeout:    fetchTimeout,
		AgeGroupFilter:  filter,
		PreviewRows:     previewRows,
		OutputDir:       os.Getenv("OUTPUT_DIR"),
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "incident-report"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.DatasetURL == "" {
		return nil, errors.New("DATASET_URL is required")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}
