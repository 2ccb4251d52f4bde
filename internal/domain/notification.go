package domain

import "time"

// NotificationKind classifies notifications for display.
type NotificationKind string

const (
	NotificationInfo         NotificationKind = "INFO"
	NotificationAccessDenied NotificationKind = "ACCESS_DENIED"
	NotificationSheetEvent   NotificationKind = "SHEET_EVENT"
)

// Notification is a transient message addressed to one user.
type Notification struct {
	ID          string
	RecipientID string
	Kind        NotificationKind
	Message     string
	Read        bool
	CreatedAt   time.Time
}
