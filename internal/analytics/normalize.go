package analytics

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/spec-kit/quality-service/internal/domain"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// accent marks are dropped so "TERMINÉ" and "TERMINE" compare equal.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining diacritical marks from s.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeStatus canonicalizes a free-text status value: upper-case, accents
// stripped, whitespace collapsed to underscores, then mapped onto the known
// vocabulary by substring. Unknown values keep their normalized form. The
// function is idempotent.
func NormalizeStatus(s string) string {
	n := strings.ToUpper(StripAccents(strings.TrimSpace(s)))
	n = whitespaceRun.ReplaceAllString(n, "_")

	switch {
	case strings.Contains(n, "EN_COURS"), strings.Contains(n, "ENCOURS"):
		return string(domain.SheetStatusEnCours)
	case strings.Contains(n, "TERMINE"):
		return string(domain.SheetStatusTermine)
	case strings.Contains(n, "BLOQUE"):
		return string(domain.SheetStatusBloque)
	}
	return n
}

// ParseLocalizedFloat parses a decimal that may use a comma separator, as
// found in legacy exports ("3,5").
func ParseLocalizedFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
