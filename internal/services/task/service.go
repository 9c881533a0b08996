package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetBoard(ctx context.Context, filter database.TaskFilter) (map[models.Status][]*models.Task, error)
	GetTask(ctx context.Context, taskID int) (*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int) error

	// Board placement
	MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task.
// The task is appended to the bottom of its column.
type CreateTaskRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      models.Status `json:"task_status"`
	ProjectID   *int          `json:"project_id,omitempty"`
	MeetingID   *int          `json:"meeting_id,omitempty"`
}

// MoveTaskRequest is the body of a board drag: the task's new column and
// its 1-based position in it.
type MoveTaskRequest struct {
	TaskID int           `json:"task_id"`
	Serial int           `json:"serial"`
	Status models.Status `json:"task_status"`
}

// service implements Service interface
type service struct {
	repo database.DataStore
}

// NewService creates a new task service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// GetBoard returns the filtered board, every status column present
func (s *service) GetBoard(ctx context.Context, filter database.TaskFilter) (map[models.Status][]*models.Task, error) {
	if filter.ProjectID < 0 {
		return nil, ErrInvalidProjectID
	}
	if filter.MeetingID < 0 {
		return nil, ErrInvalidMeetingID
	}
	board, err := s.repo.GetBoard(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	return board, nil
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// CreateTask handles task creation with validation and business rules
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := s.validateCreateTask(ctx, &req); err != nil {
		return nil, err
	}

	task, err := s.repo.CreateTask(ctx, database.TaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   req.ProjectID,
		MeetingID:   req.MeetingID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	slog.Info("task created", "task_id", task.ID, "status", task.Status, "serial", task.Serial)
	return task, nil
}

// MoveTask places a task in a column at a serial. Both affected columns
// are renumbered so persisted serials stay contiguous.
func (s *service) MoveTask(ctx context.Context, req MoveTaskRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.Serial < models.FirstSerial {
		return nil, ErrInvalidSerial
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	task, err := s.repo.MoveTask(ctx, req.TaskID, req.Status, req.Serial)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move task %d: %w", req.TaskID, err)
	}

	slog.Debug("task moved", "task_id", task.ID, "status", task.Status, "serial", task.Serial)
	return task, nil
}

// DeleteTask removes a task and closes the gap it leaves
func (s *service) DeleteTask(ctx context.Context, taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	err := s.repo.DeleteTask(ctx, taskID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}
	return nil
}

// validateCreateTask normalizes req in place and checks references.
// A meeting without a project adopts the meeting's project.
func (s *service) validateCreateTask(ctx context.Context, req *CreateTaskRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}

	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if !req.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	if req.ProjectID != nil {
		if *req.ProjectID <= 0 {
			return ErrInvalidProjectID
		}
		if _, err := s.repo.GetProjectByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
	}

	if req.MeetingID != nil {
		if *req.MeetingID <= 0 {
			return ErrInvalidMeetingID
		}
		meeting, err := s.repo.GetMeetingByID(ctx, *req.MeetingID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return ErrMeetingNotFound
			}
			return err
		}
		switch {
		case req.ProjectID == nil:
			projectID := meeting.ProjectID
			req.ProjectID = &projectID
		case *req.ProjectID != meeting.ProjectID:
			return ErrMeetingProjectMismatch
		}
	}

	return nil
}
