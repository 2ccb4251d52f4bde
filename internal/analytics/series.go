package analytics

import (
	"fmt"
	"time"
)

// MonthBucket is one calendar-month slot of a time series.
type MonthBucket struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Count int        `json:"count"`
}

// MonthlySeries buckets dated records into exactly n consecutive calendar
// months ending at the month of now. Zero dates and dates outside the window
// are dropped silently. Buckets are returned in chronological order.
func MonthlySeries(dates []time.Time, n int, now time.Time) []MonthBucket {
	if n <= 0 {
		return []MonthBucket{}
	}

	buckets := make([]MonthBucket, n)
	index := make(map[string]int, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{
			Year:  m.Year(),
			Month: m.Month(),
			Label: fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month())),
		}
		index[buckets[i].Label] = i
	}

	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		label := fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
		if i, ok := index[label]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}
