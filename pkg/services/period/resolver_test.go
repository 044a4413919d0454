package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	now := date(2024, time.August, 15, 14, 30) // Thursday

	tests := []struct {
		name          string
		period        domain.Period
		now           time.Time
		expectedStart time.Time
	}{
		{
			name:          "day starts at midnight",
			period:        domain.PeriodDay,
			now:           now,
			expectedStart: date(2024, time.August, 15, 0, 0),
		},
		{
			name:          "week starts Monday",
			period:        domain.PeriodWeek,
			now:           now,
			expectedStart: date(2024, time.August, 12, 0, 0),
		},
		{
			name:          "week on Sunday reaches back six days",
			period:        domain.PeriodWeek,
			now:           date(2024, time.August, 18, 10, 0),
			expectedStart: date(2024, time.August, 12, 0, 0),
		},
		{
			name:          "week on Monday starts same day",
			period:        domain.PeriodWeek,
			now:           date(2024, time.August, 12, 8, 0),
			expectedStart: date(2024, time.August, 12, 0, 0),
		},
		{
			name:          "month starts on the first",
			period:        domain.PeriodMonth,
			now:           now,
			expectedStart: date(2024, time.August, 1, 0, 0),
		},
		{
			name:          "quarter starts July 1 for an August now",
			period:        domain.PeriodQuarter,
			now:           now,
			expectedStart: date(2024, time.July, 1, 0, 0),
		},
		{
			name:          "quarter boundary month",
			period:        domain.PeriodQuarter,
			now:           date(2024, time.October, 1, 0, 30),
			expectedStart: date(2024, time.October, 1, 0, 0),
		},
		{
			name:          "year starts January 1",
			period:        domain.PeriodYear,
			now:           now,
			expectedStart: date(2024, time.January, 1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(tt.period, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, r.Start)
			assert.Equal(t, tt.now, r.End)
		})
	}
}

func TestResolve_UnknownPeriod(t *testing.T) {
	_, err := Resolve(domain.Period("fortnight"), time.Now())
	assert.Error(t, err)
}

func TestResolve_RangeNeverExceedsNow(t *testing.T) {
	nows := []time.Time{
		date(2024, time.January, 1, 0, 0),
		date(2024, time.February, 29, 23, 59),
		date(2024, time.December, 31, 12, 0),
		date(2023, time.June, 4, 6, 6), // Sunday
	}
	periods := []domain.Period{
		domain.PeriodDay, domain.PeriodWeek, domain.PeriodMonth,
		domain.PeriodQuarter, domain.PeriodYear,
	}

	for _, now := range nows {
		for _, p := range periods {
			r, err := Resolve(p, now)
			require.NoError(t, err)
			assert.False(t, r.Start.After(r.End), "%s at %s: start after end", p, now)
			assert.False(t, r.End.After(now), "%s at %s: end after now", p, now)
		}
	}
}

func TestBucketize_TwelveMonthsContiguous(t *testing.T) {
	now := date(2024, time.August, 15, 14, 30)

	buckets, err := Bucketize(12, domain.UnitMonth, now, MonthLabel)
	require.NoError(t, err)
	require.Len(t, buckets, 12)

	assert.Equal(t, date(2023, time.September, 1, 0, 0), buckets[0].Range.Start)
	assert.Equal(t, now, buckets[11].Range.End)
	assert.Equal(t, "Sep", buckets[0].Label)
	assert.Equal(t, "Aug", buckets[11].Label)

	for i := 0; i < len(buckets)-1; i++ {
		assert.Equal(t, buckets[i].Range.End, buckets[i+1].Range.Start,
			"bucket %d must end where bucket %d starts", i, i+1)
	}
}

func TestBucketize_ThirtyDays(t *testing.T) {
	now := date(2024, time.March, 10, 9, 0)

	buckets, err := Bucketize(30, domain.UnitDay, now, DayLabel)
	require.NoError(t, err)
	require.Len(t, buckets, 30)

	assert.Equal(t, date(2024, time.February, 10, 0, 0), buckets[0].Range.Start)
	assert.Equal(t, "10", buckets[0].Label)
	assert.Equal(t, now, buckets[29].Range.End)

	for i := 0; i < len(buckets)-1; i++ {
		assert.Equal(t, buckets[i].Range.End, buckets[i+1].Range.Start)
	}
}

func TestBucketize_LastBucketContainsNow(t *testing.T) {
	now := date(2024, time.May, 3, 18, 45)

	buckets, err := Bucketize(12, domain.UnitMonth, now, MonthLabel)
	require.NoError(t, err)
	assert.True(t, buckets[len(buckets)-1].Range.Contains(now))
}

func TestBucketize_InvalidInput(t *testing.T) {
	now := time.Now()

	_, err := Bucketize(0, domain.UnitMonth, now, MonthLabel)
	assert.Error(t, err)

	_, err = Bucketize(12, domain.BucketUnit("week"), now, MonthLabel)
	assert.Error(t, err)
}
