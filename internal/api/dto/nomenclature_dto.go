package dto

import (
	"time"

	"github.com/spec-kit/quality-service/internal/domain"
)

// UpsertNomenclatureRequest payload.
type UpsertNomenclatureRequest struct {
	Type     string `json:"type"`
	Code     string `json:"code"`
	Label    string `json:"label"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

// NomenclatureSummary response.
type NomenclatureSummary struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNomenclatureSummary maps a domain entry.
func NewNomenclatureSummary(entry *domain.Nomenclature) NomenclatureSummary {
	return NomenclatureSummary{
		ID:        entry.ID,
		Type:      entry.Type,
		Code:      entry.Code,
		Label:     entry.Label,
		Position:  entry.Position,
		IsActive:  entry.IsActive,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// NotificationSummary response.
type NotificationSummary struct {
	ID        string                  `json:"id"`
	Kind      domain.NotificationKind `json:"kind"`
	Message   string                  `json:"message"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}

// NewNotificationSummary maps a domain notification.
func NewNotificationSummary(n *domain.Notification) NotificationSummary {
	return NotificationSummary{
		ID:        n.ID,
		Kind:      n.Kind,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
