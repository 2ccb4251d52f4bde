package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthlySeriesExactWindow(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), // out of window
		{}, // unparseable date in the source data
	}

	buckets := MonthlySeries(dates, 6, now)
	assert.Len(t, buckets, 6)
	assert.Equal(t, "2026-03", buckets[0].Label)
	assert.Equal(t, "2026-08", buckets[5].Label)
	assert.Equal(t, 1, buckets[0].Count)
	assert.Equal(t, 2, buckets[5].Count)
	assert.Equal(t, 0, buckets[1].Count)
}

func TestMonthlySeriesEmptyInput(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	for _, n := range []int{6, 8, 12} {
		buckets := MonthlySeries(nil, n, now)
		assert.Len(t, buckets, n)
		for _, b := range buckets {
			assert.Zero(t, b.Count)
		}
	}
}

func TestMonthlySeriesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)
	buckets := MonthlySeries(nil, 6, now)
	assert.Equal(t, "2025-09", buckets[0].Label)
	assert.Equal(t, "2026-02", buckets[5].Label)
}

func TestMonthlySeriesZeroWindow(t *testing.T) {
	assert.Empty(t, MonthlySeries(nil, 0, time.Now()))
}
