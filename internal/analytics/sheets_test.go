package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/quality-service/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestConformityRateMixedSources(t *testing.T) {
	records := []domain.TrackingSheet{
		{Conformity: fptr(90)},
		{Conformity: fptr(60)},
		{Indicator: "rien à signaler"},
		{Indicator: "taux de conformité: 85%"},
	}
	// 90 and 85 conform, 60 does not, the third record is excluded entirely.
	rate := ConformityRate(records, 80)
	assert.InDelta(t, 66.67, rate, 0.01)
}

func TestConformityRateEmpty(t *testing.T) {
	assert.Equal(t, 0.0, ConformityRate(nil, 80))
	assert.Equal(t, 0.0, ConformityRate([]domain.TrackingSheet{}, 80))
}

func TestConformityRateNoExtractable(t *testing.T) {
	records := []domain.TrackingSheet{{Indicator: "x"}, {Indicator: ""}}
	assert.Equal(t, 0.0, ConformityRate(records, 80))
}

func TestConformityValueClampsExplicitField(t *testing.T) {
	v, ok := ConformityValue(domain.TrackingSheet{Conformity: fptr(140)})
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)
}

func TestMaxDelayPrefersNumericField(t *testing.T) {
	records := []domain.TrackingSheet{
		{Delay: fptr(3.5)},
		{Indicator: "délai de traitement 12 jours"},
		{Indicator: "aucune mesure"},
	}
	assert.Equal(t, 12.0, MaxDelay(records))
	assert.Equal(t, 0.0, MaxDelay(nil))
}

func TestMeanDelay(t *testing.T) {
	records := []domain.TrackingSheet{
		{Delay: fptr(10)},
		{Delay: fptr(20)},
		{Indicator: "sans retard"},
	}
	assert.Equal(t, 15.0, MeanDelay(records))
	assert.Equal(t, 0.0, MeanDelay(nil))
}

func TestIsBlockedByOwnStatus(t *testing.T) {
	sheet := domain.QualitySheet{ID: "s1", Status: "bloqué"}
	assert.True(t, IsBlocked(sheet, nil))
}

func TestIsBlockedByTrackingRecord(t *testing.T) {
	sheet := domain.QualitySheet{ID: "s1", Status: "terminé"}
	trackings := []domain.TrackingSheet{
		{SheetID: " s1 ", ProgressState: "Bloquée"},
	}
	assert.True(t, IsBlocked(sheet, trackings))
}

func TestIsBlockedIgnoresOtherSheets(t *testing.T) {
	sheet := domain.QualitySheet{ID: "s1", Status: "en cours"}
	trackings := []domain.TrackingSheet{
		{SheetID: "s2", ProgressState: "bloqué"},
	}
	assert.False(t, IsBlocked(sheet, trackings))
}

func TestOverdueSortedDescending(t *testing.T) {
	sheets := []domain.QualitySheet{
		{ID: "a", Status: "en cours"},
		{ID: "b", Status: "en cours"},
		{ID: "c", Status: "bloqué"},
		{ID: "d", Status: "en cours"},
	}
	trackings := []domain.TrackingSheet{
		{SheetID: "a", Delay: fptr(20)},
		{SheetID: "b", Delay: fptr(40)},
		{SheetID: "c", Delay: fptr(99)},
		{SheetID: "d", Delay: fptr(10)},
	}

	overdue := Overdue(sheets, trackings, 15)
	assert.Len(t, overdue, 2)
	assert.Equal(t, "b", overdue[0].Sheet.ID)
	assert.Equal(t, 40.0, overdue[0].Delay)
	assert.Equal(t, "a", overdue[1].Sheet.ID)

	assert.Empty(t, Overdue(nil, nil, 15))
}
