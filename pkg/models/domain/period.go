package domain

import (
	"fmt"
	"time"
)

// DateRange is a closed instant range with Start <= End. Construct through
// NewDateRange; a range is never mutated after construction.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("invalid date range: start %s after end %s", start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether t falls within the range, boundaries included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Period is a named relative date-range selector anchored at "now".
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period: %q", s)
	}
}

// BucketUnit is the calendar unit a reporting window is sliced by.
type BucketUnit string

const (
	UnitDay   BucketUnit = "day"
	UnitMonth BucketUnit = "month"
)

// Bucket is one fixed-width sub-interval of a reporting window. Buckets in a
// window are contiguous, non-overlapping and ordered oldest first.
type Bucket struct {
	Label string
	Range DateRange
}
