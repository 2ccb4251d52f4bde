package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/api/dto"
	"github.com/spec-kit/quality-service/internal/service"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// NomenclaturesHandler manages reference data endpoints.
type NomenclaturesHandler struct {
	service *service.NomenclatureService
}

// NewNomenclaturesHandler constructs handler.
func NewNomenclaturesHandler(nomenclatureService *service.NomenclatureService) *NomenclaturesHandler {
	return &NomenclaturesHandler{service: nomenclatureService}
}

// Create POST /nomenclatures.
func (h *NomenclaturesHandler) Create(c *fiber.Ctx) error {
	var req dto.UpsertNomenclatureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Type == "" || req.Code == "" {
		return apperrors.NewValidationError("type and code required", nil)
	}

	entry, err := h.service.Create(c.Context(), nomenclatureInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewNomenclatureSummary(entry)})
}

// Update PUT /nomenclatures/:id.
func (h *NomenclaturesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpsertNomenclatureRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, err := h.service.Update(c.Context(), c.Params("id"), nomenclatureInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNomenclatureSummary(entry)})
}

// Delete DELETE /nomenclatures/:id.
func (h *NomenclaturesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /nomenclatures. An optional type query narrows to one family.
func (h *NomenclaturesHandler) List(c *fiber.Ctx) error {
	entries, err := h.service.List(c.Context(), c.Query("type"))
	if err != nil {
		return err
	}
	items := make([]dto.NomenclatureSummary, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewNomenclatureSummary(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func nomenclatureInput(req dto.UpsertNomenclatureRequest) service.NomenclatureInput {
	return service.NomenclatureInput{
		Type:     req.Type,
		Code:     req.Code,
		Label:    req.Label,
		Position: req.Position,
		IsActive: req.IsActive,
	}
}
