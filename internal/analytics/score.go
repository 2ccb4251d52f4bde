package analytics

import "github.com/spec-kit/quality-service/internal/domain"

// Weights holds the composite-score coefficients. The defaults reproduce the
// legacy heuristics exactly; they are linear hand-tuned constants, not a
// learned model.
type Weights struct {
	Conformity           float64
	Efficiency           float64
	DataQuality          float64
	DelayPenalty         float64
	EfficiencyConformity float64
}

// DefaultWeights returns the legacy coefficient set.
func DefaultWeights() Weights {
	return Weights{
		Conformity:           0.4,
		Efficiency:           0.3,
		DataQuality:          0.3,
		DelayPenalty:         2,
		EfficiencyConformity: 0.2,
	}
}

// EfficiencyScore derives the efficiency component from the mean processing
// delay and the conformity rate, clamped to [0,100].
func (w Weights) EfficiencyScore(meanDelay, conformity float64) float64 {
	return clamp(100-w.DelayPenalty*meanDelay+w.EfficiencyConformity*conformity, 0, 100)
}

// Score computes the composite score from its three components, clamped to
// [0,100].
func (w Weights) Score(conformity, efficiency, dataQuality float64) float64 {
	return clamp(w.Conformity*conformity+w.Efficiency*efficiency+w.DataQuality*dataQuality, 0, 100)
}

// DataQualityBonus measures structured-data completeness: the share of
// tracking records carrying an extractable conformity value, as a percentage.
func DataQualityBonus(records []domain.TrackingSheet) float64 {
	if len(records) == 0 {
		return 0
	}
	var extractable int
	for _, r := range records {
		if _, ok := ConformityValue(r); ok {
			extractable++
		}
	}
	return float64(extractable) / float64(len(records)) * 100
}
