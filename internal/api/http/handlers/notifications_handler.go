package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/api/dto"
	"github.com/spec-kit/quality-service/internal/auth"
	"github.com/spec-kit/quality-service/internal/service"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// NotificationsHandler manages per-user notification endpoints.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /notifications. With unread=true only unread entries return.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	notifications, err := h.service.ListForUser(c.Context(), principal.User.ID, c.QueryBool("unread"))
	if err != nil {
		return err
	}
	items := make([]dto.NotificationSummary, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationSummary(&notifications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.service.MarkRead(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"read": true}})
}

// Delete DELETE /notifications/:id.
func (h *NotificationsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
