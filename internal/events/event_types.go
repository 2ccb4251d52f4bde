package events

import (
	"time"

	"github.com/spec-kit/quality-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSheetCreated       EventType = "sheet_created"
	EventSheetStatusChanged EventType = "sheet_status_changed"
	EventTrackingAdded      EventType = "tracking_added"
	EventTaskAssigned       EventType = "task_assigned"
	EventAccessDenied       EventType = "access_denied"
)

// Event represents a domain event emitted by services and guards.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SheetCreatedPayload payload.
type SheetCreatedPayload struct {
	SheetID       string  `json:"sheet_id"`
	Reference     string  `json:"reference"`
	Title         string  `json:"title"`
	Type          string  `json:"sheet_type"`
	ResponsibleID *string `json:"responsible_id,omitempty"`
}

// SheetStatusChangedPayload payload.
type SheetStatusChangedPayload struct {
	SheetID       string  `json:"sheet_id"`
	OldStatus     string  `json:"old_status"`
	NewStatus     string  `json:"new_status"`
	ResponsibleID *string `json:"responsible_id,omitempty"`
}

// TrackingAddedPayload payload.
type TrackingAddedPayload struct {
	TrackingID string `json:"tracking_id"`
	SheetID    string `json:"sheet_id"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID     string  `json:"task_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Path     string        `json:"path"`
	Role     domain.Role   `json:"role"`
	Required []domain.Role `json:"required"`
}
