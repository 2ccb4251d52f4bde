package domain

import "time"

// Project groups tasks under a single owner.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      string
	OwnerID     *string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	TaskStatusTodo    TaskStatus = "A_FAIRE"
	TaskStatusEnCours TaskStatus = "EN_COURS"
	TaskStatusTermine TaskStatus = "TERMINE"
)

// Task is a unit of project work assignable to a user.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      TaskStatus
	AssigneeID  *string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
