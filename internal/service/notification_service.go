package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
	"github.com/spec-kit/quality-service/internal/repository"
)

// NotificationService turns domain events into persisted notifications.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccessDenied, n.handleAccessDenied)
	n.dispatcher.Subscribe(events.EventSheetStatusChanged, n.handleSheetStatusChanged)
	n.dispatcher.Subscribe(events.EventTaskAssigned, n.handleTaskAssigned)
}

// handleAccessDenied persists the transient "access denied" message shown to
// the denied user. One event, one notification.
func (n *NotificationService) handleAccessDenied(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccessDeniedPayload)
	if !ok || event.ActorID == "" {
		return nil
	}
	n.logger.Info("AccessDenied", zap.String("actor_id", event.ActorID), zap.String("path", payload.Path))
	return n.notifications.Create(ctx, &domain.Notification{
		RecipientID: event.ActorID,
		Kind:        domain.NotificationAccessDenied,
		Message:     fmt.Sprintf("Accès refusé à %s", payload.Path),
	})
}

func (n *NotificationService) handleSheetStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SheetStatusChangedPayload)
	if !ok || payload.ResponsibleID == nil {
		return nil
	}
	n.logger.Info("SheetStatusChanged", zap.String("sheet_id", payload.SheetID), zap.String("new_status", payload.NewStatus))
	return n.notifications.Create(ctx, &domain.Notification{
		RecipientID: *payload.ResponsibleID,
		Kind:        domain.NotificationSheetEvent,
		Message:     fmt.Sprintf("Fiche %s: statut %s → %s", payload.SheetID, payload.OldStatus, payload.NewStatus),
	})
}

func (n *NotificationService) handleTaskAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TaskAssignedPayload)
	if !ok || payload.AssigneeID == nil {
		return nil
	}
	n.logger.Info("TaskAssigned", zap.String("task_id", payload.TaskID))
	return n.notifications.Create(ctx, &domain.Notification{
		RecipientID: *payload.AssigneeID,
		Kind:        domain.NotificationInfo,
		Message:     fmt.Sprintf("Tâche %s vous a été assignée", payload.TaskID),
	})
}

// ListForUser returns a user's notifications.
func (n *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return n.notifications.ListByRecipient(ctx, userID, unreadOnly)
}

// MarkRead flags a notification as read.
func (n *NotificationService) MarkRead(ctx context.Context, id string) error {
	return n.notifications.MarkRead(ctx, id)
}

// Delete removes a notification.
func (n *NotificationService) Delete(ctx context.Context, id string) error {
	return n.notifications.Delete(ctx, id)
}
