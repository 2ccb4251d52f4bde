package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/service"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// ImportHandler triggers legacy backend imports.
type ImportHandler struct {
	service *service.ImportService
}

// NewImportHandler constructs handler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{service: importService}
}

// Run POST /import/legacy. The caller's own bearer token is forwarded to the
// legacy backend.
func (h *ImportHandler) Run(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		return apperrors.NewUnauthorized("bearer token required")
	}

	report, err := h.service.Run(c.Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
