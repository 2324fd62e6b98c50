package kafka

import (
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/incident-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() domain.Report {
	return domain.Report{
		GeneratedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
		TimeOfDay: []domain.CountRow{
			{Category: "late-night", Count: 3},
			{Category: "morning", Count: 1},
			{Category: "afternoon", Count: 0},
			{Category: "evening", Count: 2},
		},
		AgeGroups:         []domain.CountRow{{Category: "25-44", Count: 2}, {Category: "UNKNOWN", Count: 1}},
		FilteredAgeGroups: []domain.CountRow{{Category: "25-44", Count: 2}},
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	rows := []domain.CountRow{{Category: "morning", Count: 4}}

	msg, err := serializeToMessage(domain.SectionTimeOfDay, rows, now)
	require.NoError(t, err)

	assert.Equal(t, []byte("time_of_day"), msg.Key)
	assert.JSONEq(t, `[{"category":"morning","count":4}]`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "section", msg.Headers[0].Key)
	assert.Equal(t, []byte("time_of_day"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_Unmarshalable(t *testing.T) {
	_, err := serializeToMessage(domain.SectionTrend, math.NaN(), time.Now())
	assert.Error(t, err)
}

func TestReportMessages_WithoutTrend(t *testing.T) {
	msgs, err := reportMessages(testReport())
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "time_of_day", string(msgs[0].Key))
	assert.Equal(t, "age_groups", string(msgs[1].Key))
	assert.Equal(t, "age_groups_filtered", string(msgs[2].Key))
}

func TestReportMessages_WithTrend(t *testing.T) {
	report := testReport()
	report.Trend = &domain.TrendModel{Slope: 2, Intercept: 1, Correlation: 1}

	msgs, err := reportMessages(report)
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "trend", string(msgs[3].Key))
	assert.Contains(t, string(msgs[3].Value), `"slope":2`)
}
