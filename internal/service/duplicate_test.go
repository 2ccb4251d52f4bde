package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/quality-service/internal/domain"
)

func TestHasDuplicateSheet(t *testing.T) {
	existing := []domain.QualitySheet{
		{ID: "s1", Title: "Audit fournisseur", Type: "AUDIT"},
		{ID: "s2", Title: "Revue de code", Type: "REVUE"},
	}

	assert.True(t, HasDuplicateSheet(existing, "Audit fournisseur", "AUDIT"))
	assert.True(t, HasDuplicateSheet(existing, "  audit FOURNISSEUR  ", "audit"))
	assert.False(t, HasDuplicateSheet(existing, "Audit fournisseur", "REVUE"))
	assert.False(t, HasDuplicateSheet(existing, "Audit interne", "AUDIT"))
	assert.False(t, HasDuplicateSheet(nil, "Audit fournisseur", "AUDIT"))
}

func TestHasDuplicateTracking(t *testing.T) {
	day := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	existing := []domain.TrackingSheet{
		{ID: "t1", SheetID: "s1", TrackingDate: day},
		{ID: "t2", SheetID: " s2 ", TrackingDate: day},
	}

	// Same sheet and same calendar day, regardless of time of day.
	assert.True(t, HasDuplicateTracking(existing, "s1", day.Add(8*time.Hour)))
	assert.False(t, HasDuplicateTracking(existing, "s1", day.AddDate(0, 0, 1)))
	assert.False(t, HasDuplicateTracking(existing, "s3", day))

	// Sheet references are compared trimmed.
	assert.True(t, HasDuplicateTracking(existing, "s2", day))
}

func TestGenerateSheetReference(t *testing.T) {
	ref := generateSheetReference()
	assert.True(t, strings.HasPrefix(ref, "FQ-"))
	assert.Len(t, ref, 11)
	assert.NotEqual(t, ref, generateSheetReference())
}
