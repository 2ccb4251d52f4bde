package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/service"
)

// DashboardHandler serves the KPI and analytics views.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// KPI GET /kpi. With refresh=true a reload is forced before responding.
func (h *DashboardHandler) KPI(c *fiber.Ctx) error {
	snapshot, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"generated_at": snapshot.GeneratedAt,
		"kpi":          snapshot.KPI,
	}})
}

// AIDashboard GET /ai-dashboard.
func (h *DashboardHandler) AIDashboard(c *fiber.Ctx) error {
	snapshot, err := h.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"generated_at": snapshot.GeneratedAt,
		"ai":           snapshot.AI,
	}})
}

func (h *DashboardHandler) snapshot(c *fiber.Ctx) (*service.DashboardSnapshot, error) {
	if c.QueryBool("refresh") {
		return h.service.Refresh(c.Context())
	}
	return h.service.Snapshot(c.Context())
}
