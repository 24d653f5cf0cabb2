package domain

import (
	"fmt"
	"time"
)

// Period is a named rolling lookback window used for summary generation.
type Period string

const (
	Period3Days  Period = "3days"
	PeriodWeek   Period = "week"
	Period2Weeks Period = "2weeks"
	PeriodMonth  Period = "month"

	// DefaultPeriod is used when a request omits the period query parameter.
	DefaultPeriod = PeriodWeek
)

// ParsePeriod parses a period label. An empty string yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return DefaultPeriod, nil
	case Period3Days, PeriodWeek, Period2Weeks, PeriodMonth:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Days returns the lookback window length in days.
func (p Period) Days() int {
	switch p {
	case Period3Days:
		return 3
	case Period2Weeks:
		return 14
	case PeriodMonth:
		return 30
	default:
		return 7
	}
}

// Key returns the cache key for this period ending on the given day.
// The key embeds the UTC calendar date, so the same logical period on
// different days produces different keys and old rows simply stop being
// looked up once the day rolls over.
func (p Period) Key(day time.Time) string {
	return fmt.Sprintf("%s:%s", p, day.UTC().Format("2006-01-02"))
}

// WindowStart returns the start of the lookback window ending at now.
func (p Period) WindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -p.Days())
}
