// Package database defines repository interfaces for data access
package database

import (
	"context"
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskFilter scopes a board read. Zero values mean "any".
type TaskFilter struct {
	ProjectID int
	MeetingID int
}

// TaskParams holds the fields of a new task
type TaskParams struct {
	Title       string
	Description string
	Status      models.Status
	ProjectID   *int
	MeetingID   *int
}

// MeetingParams holds the fields of a new meeting
type MeetingParams struct {
	ProjectID   int
	Title       string
	Slug        string
	Date        time.Time
	Description string
}

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetBoard(ctx context.Context, filter TaskFilter) (map[models.Status][]*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	CreateTask(ctx context.Context, params TaskParams) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error
}

// TaskMover places a task in a column at a serial and renumbers the
// columns it left and entered.
type TaskMover interface {
	MoveTask(ctx context.Context, taskID int, status models.Status, serial int) (*models.Task, error)
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
	TaskMover
}

// ProjectRepository combines all project-related operations.
type ProjectRepository interface {
	CreateProject(ctx context.Context, title, description string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
}

// MeetingRepository combines all meeting-related operations.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, params MeetingParams) (*models.Meeting, error)
	GetMeetingsByProject(ctx context.Context, projectID int) ([]*models.Meeting, error)
	GetMeetingByID(ctx context.Context, id int) (*models.Meeting, error)
	GetMeetingBySlug(ctx context.Context, slug string) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, id int, params MeetingParams) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, id int) error
}

// DataStore defines the unified interface for all data operations needed by the server.
type DataStore interface {
	TaskRepository
	ProjectRepository
	MeetingRepository
}
