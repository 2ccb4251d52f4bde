package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/quality-service/internal/api/dto"
	"github.com/spec-kit/quality-service/internal/auth"
	"github.com/spec-kit/quality-service/internal/service"
	apperrors "github.com/spec-kit/quality-service/pkg/util"
)

// ProjectsHandler manages project and task endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// CreateProject POST /projets.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.UpsertProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	project, err := h.service.CreateProject(c.Context(), projectInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewProjectSummary(project)})
}

// UpdateProject PUT /projets/:id.
func (h *ProjectsHandler) UpdateProject(c *fiber.Ctx) error {
	var req dto.UpsertProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	project, err := h.service.UpdateProject(c.Context(), c.Params("id"), projectInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectSummary(project)})
}

// DeleteProject DELETE /projets/:id.
func (h *ProjectsHandler) DeleteProject(c *fiber.Ctx) error {
	if err := h.service.DeleteProject(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetProject GET /projets/:id.
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.service.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProjectSummary(project)})
}

// ListProjects GET /projets.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.service.ListProjects(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProjectSummary, 0, len(projects))
	for i := range projects {
		items = append(items, dto.NewProjectSummary(&projects[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTask POST /taches.
func (h *ProjectsHandler) CreateTask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpsertTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProjectID == "" || req.Title == "" {
		return apperrors.NewValidationError("project_id and title required", nil)
	}

	task, err := h.service.CreateTask(c.Context(), principal.User.ID, taskInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTaskSummary(task)})
}

// UpdateTask PUT /taches/:id.
func (h *ProjectsHandler) UpdateTask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpsertTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	task, err := h.service.UpdateTask(c.Context(), principal.User.ID, c.Params("id"), taskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskSummary(task)})
}

// DeleteTask DELETE /taches/:id.
func (h *ProjectsHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.service.DeleteTask(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTasks GET /taches. An optional project_id query narrows to one project.
func (h *ProjectsHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.service.ListTasks(c.Context(), c.Query("project_id"))
	if err != nil {
		return err
	}
	items := make([]dto.TaskSummary, 0, len(tasks))
	for i := range tasks {
		items = append(items, dto.NewTaskSummary(&tasks[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func projectInput(req dto.UpsertProjectRequest) service.ProjectInput {
	return service.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     req.OwnerID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}

func taskInput(req dto.UpsertTaskRequest) service.TaskInput {
	return service.TaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	}
}
