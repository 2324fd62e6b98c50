package domain

import (
	"strings"
	"time"
)

// TimeRange is a time-of-day bucket. The constant order is the report order.
type TimeRange int

const (
	LateNight TimeRange = iota
	Morning
	Afternoon
	Evening
)

// TimeRanges lists every bucket in report order.
var TimeRanges = []TimeRange{LateNight, Morning, Afternoon, Evening}

func (r TimeRange) String() string {
	switch r {
	case LateNight:
		return "late-night"
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	default:
		return "unknown"
	}
}

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

// ParseTimeOfDay parses an "HH:MM:SS" (or "HH:MM") string into the offset
// from midnight. Blank or invalid input returns false.
func ParseTimeOfDay(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, true
	}
	return 0, false
}

// ClassifyTimeOfDay maps an offset from midnight to its bucket. Intervals are
// lower-inclusive and upper-exclusive, so 06:00:00 is morning, 12:00:00 is
// afternoon and 18:00:00 is evening.
func ClassifyTimeOfDay(d time.Duration) TimeRange {
	switch {
	case d >= 6*time.Hour && d < 12*time.Hour:
		return Morning
	case d >= 12*time.Hour && d < 18*time.Hour:
		return Afternoon
	case d >= 18*time.Hour && d < 24*time.Hour:
		return Evening
	default:
		return LateNight
	}
}
