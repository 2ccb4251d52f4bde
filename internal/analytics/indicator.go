package analytics

import (
	"regexp"
	"strings"
)

// Legacy tracking sheets often carry their conformity value only inside a
// free-text indicator field. The patterns below are the backward-compatibility
// contract with that stored data; they must be tried in this order.
var (
	keyValuePattern = regexp.MustCompile(`:\s*(\d{1,3}(?:[.,]\d+)?)\s*%?`)
	percentPattern  = regexp.MustCompile(`(\d{1,3}(?:[.,]\d+)?)\s*%`)
	decimalPattern  = regexp.MustCompile(`\b0[.,](\d+)\b`)

	delayPattern = regexp.MustCompile(`(?i)(delai|traitement)`)
	numberToken  = regexp.MustCompile(`(\d{1,3})(?:[.,]\d+)?\s*(?:jours?|j\b|days?)?`)
)

// CoerceIndicator extracts a conformity percentage from free-text indicator
// content. Tried in order: "key: value[%]", "label ... value%", and
// "label ... 0.xx" (decimal fractions are scaled to percent). The result is
// clamped to [0,100]. ok is false when no pattern matches.
func CoerceIndicator(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if m := keyValuePattern.FindStringSubmatch(text); m != nil {
		if v, ok := ParseLocalizedFloat(m[1]); ok {
			return clamp(scaleFraction(v), 0, 100), true
		}
	}
	if m := percentPattern.FindStringSubmatch(text); m != nil {
		if v, ok := ParseLocalizedFloat(m[1]); ok {
			return clamp(scaleFraction(v), 0, 100), true
		}
	}
	if m := decimalPattern.FindStringSubmatch(text); m != nil {
		if v, ok := ParseLocalizedFloat("0." + m[1]); ok {
			return clamp(v*100, 0, 100), true
		}
	}
	return 0, false
}

// Conformity rates below 1 are legacy fractions ("0.92"), never sub-percent
// values; scale them regardless of which pattern captured them.
func scaleFraction(v float64) float64 {
	if v > 0 && v < 1 {
		return v * 100
	}
	return v
}

// ExtractDelay mines a processing delay (in days) out of indicator text. The
// search is anchored on a "delai"/"traitement" keyword and bounded to the
// next number of at most three digits, optionally followed by a day unit.
func ExtractDelay(text string) (float64, bool) {
	stripped := StripAccents(text)
	loc := delayPattern.FindStringIndex(stripped)
	if loc == nil {
		return 0, false
	}
	m := numberToken.FindStringSubmatch(stripped[loc[1]:])
	if m == nil {
		return 0, false
	}
	v, ok := ParseLocalizedFloat(m[1])
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
