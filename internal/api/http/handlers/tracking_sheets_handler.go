package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/api/dto"
	"github.com/spec-kit/quality-service/internal/auth"
	"github.com/spec-kit/quality-service/internal/service"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// TrackingSheetsHandler manages tracking record endpoints.
type TrackingSheetsHandler struct {
	service *service.TrackingSheetService
}

// NewTrackingSheetsHandler constructs handler.
func NewTrackingSheetsHandler(trackingService *service.TrackingSheetService) *TrackingSheetsHandler {
	return &TrackingSheetsHandler{service: trackingService}
}

// Create POST /fiches-suivi.
func (h *TrackingSheetsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpsertTrackingSheetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SheetID == "" || req.TrackingDate.IsZero() {
		return apperrors.NewValidationError("sheet_id and tracking_date required", nil)
	}

	tracking, err := h.service.Create(c.Context(), principal.User.ID, trackingInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTrackingSheetSummary(tracking)})
}

// Update PUT /fiches-suivi/:id.
func (h *TrackingSheetsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpsertTrackingSheetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	tracking, err := h.service.Update(c.Context(), c.Params("id"), trackingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTrackingSheetSummary(tracking)})
}

// Delete DELETE /fiches-suivi/:id.
func (h *TrackingSheetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get GET /fiches-suivi/:id.
func (h *TrackingSheetsHandler) Get(c *fiber.Ctx) error {
	tracking, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTrackingSheetSummary(tracking)})
}

// List GET /fiches-suivi. An optional sheet_id query narrows to one sheet.
func (h *TrackingSheetsHandler) List(c *fiber.Ctx) error {
	trackings, err := h.service.List(c.Context(), c.Query("sheet_id"))
	if err != nil {
		return err
	}
	items := make([]dto.TrackingSheetSummary, 0, len(trackings))
	for i := range trackings {
		items = append(items, dto.NewTrackingSheetSummary(&trackings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func trackingInput(req dto.UpsertTrackingSheetRequest) service.TrackingSheetInput {
	return service.TrackingSheetInput{
		SheetID:       req.SheetID,
		ProgressState: req.ProgressState,
		Conformity:    req.Conformity,
		Delay:         req.Delay,
		Indicator:     req.Indicator,
		Comment:       req.Comment,
		TrackingDate:  req.TrackingDate,
	}
}
