package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/quality-service/internal/analytics"
	"github.com/spec-kit/quality-service/internal/domain"
	"github.com/spec-kit/quality-service/internal/events"
	"github.com/spec-kit/quality-service/internal/repository"
)

// ProjectService coordinates project and task workflows.
type ProjectService struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, tasks repository.TaskRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, dispatcher: dispatcher}
}

// ProjectInput describes create/update payloads.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
	OwnerID     *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateProject inserts a project.
func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Status:      analytics.NormalizeStatus(input.Status),
		OwnerID:     input.OwnerID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if project.Status == "" {
		project.Status = string(domain.SheetStatusEnCours)
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// UpdateProject applies the input and returns the stored project.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, input ProjectInput) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = strings.TrimSpace(input.Name)
	project.Description = strings.TrimSpace(input.Description)
	project.Status = analytics.NormalizeStatus(input.Status)
	project.OwnerID = input.OwnerID
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.projects.GetByID(ctx, id)
}

// DeleteProject removes a project and its tasks.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if err := s.tasks.Delete(ctx, task.ID); err != nil {
			return err
		}
	}
	return s.projects.Delete(ctx, id)
}

// GetProject fetches one project.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// ListProjects returns all projects.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// TaskInput describes create/update payloads for tasks.
type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      domain.TaskStatus
	AssigneeID  *string
	DueDate     *time.Time
}

// CreateTask inserts a task under an existing project.
func (s *ProjectService) CreateTask(ctx context.Context, actorID string, input TaskInput) (*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ProjectID:   input.ProjectID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusTodo
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventTaskAssigned,
			ActorID: actorID,
			Payload: events.TaskAssignedPayload{TaskID: task.ID, AssigneeID: task.AssigneeID},
		})
	}
	return task, nil
}

// UpdateTask applies the input and returns the stored task. A change of
// assignee publishes a task_assigned event.
func (s *ProjectService) UpdateTask(ctx context.Context, actorID, id string, input TaskInput) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldAssignee := task.AssigneeID
	task.Title = strings.TrimSpace(input.Title)
	task.Description = strings.TrimSpace(input.Description)
	if input.Status != "" {
		task.Status = input.Status
	}
	task.AssigneeID = input.AssigneeID
	task.DueDate = input.DueDate

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	if assigneeChanged(oldAssignee, task.AssigneeID) && task.AssigneeID != nil {
		s.publish(ctx, events.Event{
			Type:    events.EventTaskAssigned,
			ActorID: actorID,
			Payload: events.TaskAssignedPayload{TaskID: task.ID, AssigneeID: task.AssigneeID},
		})
	}
	return s.tasks.GetByID(ctx, id)
}

// DeleteTask removes a task.
func (s *ProjectService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// ListTasks returns all tasks, or those of one project when projectID is
// non-empty.
func (s *ProjectService) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	if strings.TrimSpace(projectID) != "" {
		return s.tasks.ListByProject(ctx, strings.TrimSpace(projectID))
	}
	return s.tasks.List(ctx)
}

func assigneeChanged(old, new *string) bool {
	switch {
	case old == nil && new == nil:
		return false
	case old == nil || new == nil:
		return true
	default:
		return *old != *new
	}
}

func (s *ProjectService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
