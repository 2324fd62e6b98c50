package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/incident-report/internal/config"
	"github.com/couchcryptid/incident-report/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes report sections to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Load publishes every section of the report in a single WriteMessages call.
func (w *Writer) Load(ctx context.Context, report domain.Report) error {
	msgs, err := reportMessages(report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	w.logger.Info("report published", "topic", w.writer.Topic, "sections", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// reportMessages builds one message per report section. The trend section is
// omitted when the report has no trend model.
func reportMessages(report domain.Report) ([]kafkago.Message, error) {
	sections := []struct {
		name    string
		payload any
	}{
		{domain.SectionTimeOfDay, report.TimeOfDay},
		{domain.SectionAgeGroups, report.AgeGroups},
		{domain.SectionAgeGroupsFiltered, report.FilteredAgeGroups},
	}
	if report.Trend != nil {
		sections = append(sections, struct {
			name    string
			payload any
		}{domain.SectionTrend, report.Trend})
	}

	msgs := make([]kafkago.Message, 0, len(sections))
	for _, s := range sections {
		msg, err := serializeToMessage(s.name, s.payload, report.GeneratedAt)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// serializeToMessage marshals one report section into a Kafka message keyed
// by the section name.
func serializeToMessage(section string, payload any, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s section: %w", section, err)
	}
	return kafkago.Message{
		Key:   []byte(section),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "section", Value: []byte(section)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}
