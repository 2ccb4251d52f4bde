package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/quality-service/internal/domain"
)

func TestEfficiencyFormula(t *testing.T) {
	w := DefaultWeights()

	// 100 - 2*10 + 0.2*80 = 96
	assert.InDelta(t, 96.0, w.EfficiencyScore(10, 80), 1e-9)

	// Heavy delay drives the component to the lower clamp.
	assert.Equal(t, 0.0, w.EfficiencyScore(80, 0))

	// No delay, full conformity hits the upper clamp.
	assert.Equal(t, 100.0, w.EfficiencyScore(0, 100))
}

func TestScoreWeights(t *testing.T) {
	w := DefaultWeights()

	// 0.4*80 + 0.3*90 + 0.3*50 = 74
	assert.InDelta(t, 74.0, w.Score(80, 90, 50), 1e-9)
	assert.Equal(t, 0.0, w.Score(0, 0, 0))
	assert.Equal(t, 100.0, w.Score(100, 100, 100))
}

func TestDataQualityBonus(t *testing.T) {
	records := []domain.TrackingSheet{
		{Conformity: fptr(90)},
		{Indicator: "taux: 70%"},
		{Indicator: "sans valeur"},
		{},
	}
	assert.Equal(t, 50.0, DataQualityBonus(records))
	assert.Equal(t, 0.0, DataQualityBonus(nil))
}
