package analytics

import (
	"sort"
	"strings"

	"github.com/spec-kit/quality-service/internal/domain"
)

// ConformityValue resolves the conformity percentage of a tracking record,
// preferring the explicit numeric field over indicator-text coercion. ok is
// false when the record contributes no value at all.
func ConformityValue(t domain.TrackingSheet) (float64, bool) {
	if t.Conformity != nil {
		return clamp(*t.Conformity, 0, 100), true
	}
	return CoerceIndicator(t.Indicator)
}

// ConformityRate computes the share of tracking records whose conformity
// value meets the cutoff, as a percentage. Records with no extractable value
// are excluded from both numerator and denominator; an empty input yields 0.
func ConformityRate(records []domain.TrackingSheet, cutoff float64) float64 {
	var total, conforming int
	for _, r := range records {
		v, ok := ConformityValue(r)
		if !ok {
			continue
		}
		total++
		if v >= cutoff {
			conforming++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(conforming) / float64(total) * 100
}

// RecordDelay resolves the processing delay of a tracking record, preferring
// the explicit numeric field over indicator-text mining.
func RecordDelay(t domain.TrackingSheet) (float64, bool) {
	if t.Delay != nil && *t.Delay > 0 {
		return *t.Delay, true
	}
	return ExtractDelay(t.Indicator)
}

// MaxDelay returns the greatest positive delay across the tracking records,
// or 0 when none carries one.
func MaxDelay(records []domain.TrackingSheet) float64 {
	var max float64
	for _, r := range records {
		if v, ok := RecordDelay(r); ok && v > max {
			max = v
		}
	}
	return max
}

// MeanDelay averages the positive delays across the tracking records.
func MeanDelay(records []domain.TrackingSheet) float64 {
	var sum float64
	var n int
	for _, r := range records {
		if v, ok := RecordDelay(r); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// IsBlocked reports whether a quality sheet is blocked: either its own status
// normalizes to BLOQUE, or any of its tracking records (matched by exact
// trimmed foreign-key equality) has a blocked progress state.
func IsBlocked(sheet domain.QualitySheet, trackings []domain.TrackingSheet) bool {
	if NormalizeStatus(sheet.Status) == string(domain.SheetStatusBloque) {
		return true
	}
	sheetID := strings.TrimSpace(sheet.ID)
	for _, t := range trackings {
		if strings.TrimSpace(t.SheetID) != sheetID {
			continue
		}
		if NormalizeStatus(t.ProgressState) == string(domain.SheetStatusBloque) {
			return true
		}
	}
	return false
}

// OverdueSheet pairs a quality sheet with its maximum processing delay.
type OverdueSheet struct {
	Sheet domain.QualitySheet
	Delay float64
}

// Overdue lists sheets that are not blocked but whose maximum processing
// delay exceeds the threshold, sorted by delay descending.
func Overdue(sheets []domain.QualitySheet, trackings []domain.TrackingSheet, threshold float64) []OverdueSheet {
	bySheet := groupBySheet(trackings)

	result := make([]OverdueSheet, 0)
	for _, s := range sheets {
		if IsBlocked(s, trackings) {
			continue
		}
		delay := MaxDelay(bySheet[strings.TrimSpace(s.ID)])
		if delay > threshold {
			result = append(result, OverdueSheet{Sheet: s, Delay: delay})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Delay > result[j].Delay
	})
	return result
}

func groupBySheet(trackings []domain.TrackingSheet) map[string][]domain.TrackingSheet {
	grouped := make(map[string][]domain.TrackingSheet, len(trackings))
	for _, t := range trackings {
		key := strings.TrimSpace(t.SheetID)
		grouped[key] = append(grouped[key], t)
	}
	return grouped
}
