package period

import (
	"fmt"
	"time"

	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// Resolve turns a named period into a concrete range anchored at now.
// Ranges always end at the now that was passed in, never a cached one, so
// re-resolving a moment later yields a strictly wider range with the same
// start.
func Resolve(p domain.Period, now time.Time) (domain.DateRange, error) {
	var start time.Time

	switch p {
	case domain.PeriodDay:
		start = midnight(now)
	case domain.PeriodWeek:
		// ISO week: Monday start, Sunday is 6 days in.
		offset := (int(now.Weekday()) + 6) % 7
		start = midnight(now).AddDate(0, 0, -offset)
	case domain.PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case domain.PeriodQuarter:
		month := time.Month((int(now.Month())-1)/3*3 + 1)
		start = time.Date(now.Year(), month, 1, 0, 0, 0, 0, now.Location())
	case domain.PeriodYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return domain.DateRange{}, fmt.Errorf("unknown period: %q", p)
	}

	return domain.NewDateRange(start, now)
}

// LabelFunc renders a short, locale-stable chart-axis tag for a bucket start.
type LabelFunc func(time.Time) string

// MonthLabel renders a three-letter month abbreviation.
func MonthLabel(t time.Time) string { return t.Format("Jan") }

// DayLabel renders a zero-padded day of month.
func DayLabel(t time.Time) string { return t.Format("02") }

// Bucketize slices the window ending at now into count contiguous equal-unit
// buckets, oldest first. Each bucket ends where the next begins; the last
// bucket ends at now so the union covers the window exactly once.
func Bucketize(count int, unit domain.BucketUnit, now time.Time, label LabelFunc) ([]domain.Bucket, error) {
	if count <= 0 {
		return nil, fmt.Errorf("bucket count must be positive, got %d", count)
	}

	starts := make([]time.Time, count)
	switch unit {
	case domain.UnitMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 0; i < count; i++ {
			starts[i] = first.AddDate(0, -(count - 1 - i), 0)
		}
	case domain.UnitDay:
		first := midnight(now)
		for i := 0; i < count; i++ {
			starts[i] = first.AddDate(0, 0, -(count - 1 - i))
		}
	default:
		return nil, fmt.Errorf("unknown bucket unit: %q", unit)
	}

	buckets := make([]domain.Bucket, count)
	for i, start := range starts {
		end := now
		if i < count-1 {
			end = starts[i+1]
		}
		r, err := domain.NewDateRange(start, end)
		if err != nil {
			return nil, err
		}
		buckets[i] = domain.Bucket{Label: label(start), Range: r}
	}
	return buckets, nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
