package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/api/dto"
	"github.com/spec-kit/quality-service/internal/auth"
	"github.com/spec-kit/quality-service/internal/service"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// QualitySheetsHandler manages quality sheet endpoints.
type QualitySheetsHandler struct {
	service *service.QualitySheetService
}

// NewQualitySheetsHandler constructs handler.
func NewQualitySheetsHandler(sheetService *service.QualitySheetService) *QualitySheetsHandler {
	return &QualitySheetsHandler{service: sheetService}
}

// Create POST /fiches-qualite.
func (h *QualitySheetsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpsertQualitySheetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Type == "" {
		return apperrors.NewValidationError("title and type required", nil)
	}

	sheet, err := h.service.Create(c.Context(), principal.User.ID, sheetInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewQualitySheetSummary(sheet)})
}

// Update PUT /fiches-qualite/:id.
func (h *QualitySheetsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpsertQualitySheetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sheet, err := h.service.Update(c.Context(), principal.User.ID, c.Params("id"), sheetInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQualitySheetSummary(sheet)})
}

// Delete DELETE /fiches-qualite/:id.
func (h *QualitySheetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get GET /fiches-qualite/:id.
func (h *QualitySheetsHandler) Get(c *fiber.Ctx) error {
	sheet, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQualitySheetSummary(sheet)})
}

// List GET /fiches-qualite.
func (h *QualitySheetsHandler) List(c *fiber.Ctx) error {
	sheets, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.QualitySheetSummary, 0, len(sheets))
	for i := range sheets {
		items = append(items, dto.NewQualitySheetSummary(&sheets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func sheetInput(req dto.UpsertQualitySheetRequest) service.QualitySheetInput {
	return service.QualitySheetInput{
		Title:         req.Title,
		Type:          req.Type,
		Status:        req.Status,
		ResponsibleID: req.ResponsibleID,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
	}
}
