package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"en cours":     "EN_COURS",
		"en   cours":   "EN_COURS",
		"ÉÉn_Cours":    "EN_COURS",
		"encours":      "EN_COURS",
		"terminé":      "TERMINE",
		"  Terminée  ": "TERMINE",
		"bloqué":       "BLOQUE",
		"Bloquée":      "BLOQUE",
		"validation":   "VALIDATION",
		"à valider":    "A_VALIDER",
		"":             "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeStatus(input), "input %q", input)
	}
}

func TestNormalizeStatusIdempotent(t *testing.T) {
	for _, s := range []string{"en cours", "terminé", "bloqué", "à valider", "EN_COURS"} {
		once := NormalizeStatus(s)
		assert.Equal(t, once, NormalizeStatus(once))
	}
}

func TestParseLocalizedFloat(t *testing.T) {
	v, ok := ParseLocalizedFloat("3,5")
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)

	v, ok = ParseLocalizedFloat(" 12.25 ")
	assert.True(t, ok)
	assert.Equal(t, 12.25, v)

	_, ok = ParseLocalizedFloat("n/a")
	assert.False(t, ok)

	_, ok = ParseLocalizedFloat("")
	assert.False(t, ok)
}
