package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceIndicatorKeyValue(t *testing.T) {
	v, ok := CoerceIndicator("taux de conformité: 85%")
	assert.True(t, ok)
	assert.Equal(t, 85.0, v)

	v, ok = CoerceIndicator("conformite : 72")
	assert.True(t, ok)
	assert.Equal(t, 72.0, v)
}

func TestCoerceIndicatorPercent(t *testing.T) {
	v, ok := CoerceIndicator("audit terminé avec 91 % de conformité")
	assert.True(t, ok)
	assert.Equal(t, 91.0, v)

	v, ok = CoerceIndicator("résultat 66,5%")
	assert.True(t, ok)
	assert.Equal(t, 66.5, v)
}

func TestCoerceIndicatorDecimal(t *testing.T) {
	v, ok := CoerceIndicator("indice de conformité 0.92")
	assert.True(t, ok)
	assert.Equal(t, 92.0, v)

	v, ok = CoerceIndicator("ratio 0,75 sur le lot")
	assert.True(t, ok)
	assert.Equal(t, 75.0, v)
}

func TestCoerceIndicatorFractionAfterColon(t *testing.T) {
	v, ok := CoerceIndicator("taux: 0.92")
	assert.True(t, ok)
	assert.Equal(t, 92.0, v)
}

func TestCoerceIndicatorClamped(t *testing.T) {
	v, ok := CoerceIndicator("taux: 250%")
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)
}

func TestCoerceIndicatorNoMatch(t *testing.T) {
	for _, text := range []string{"", "aucune mesure disponible", "conforme"} {
		_, ok := CoerceIndicator(text)
		assert.False(t, ok, "text %q", text)
	}
}

func TestExtractDelay(t *testing.T) {
	v, ok := ExtractDelay("délai de traitement 20 jours")
	assert.True(t, ok)
	assert.Equal(t, 20.0, v)

	v, ok = ExtractDelay("traitement en 7j")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = ExtractDelay("aucun retard constaté")
	assert.False(t, ok)

	_, ok = ExtractDelay("")
	assert.False(t, ok)
}
