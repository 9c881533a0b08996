// Package meeting manages the dated sessions a project's tasks come from.
package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Service defines all meeting-related business operations
type Service interface {
	ListMeetings(ctx context.Context, projectID int) ([]*models.Meeting, error)
	GetMeeting(ctx context.Context, id int) (*models.Meeting, error)
	GetMeetingBySlug(ctx context.Context, slug string) (*models.Meeting, error)
	CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*models.Meeting, error)
	UpdateMeeting(ctx context.Context, id int, req UpdateMeetingRequest) (*models.Meeting, error)
	DeleteMeeting(ctx context.Context, id int) error
}

// CreateMeetingRequest encapsulates data for creating a meeting.
// Slug is generated from the title when empty.
type CreateMeetingRequest struct {
	ProjectID   int       `json:"project_id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
}

// UpdateMeetingRequest changes the fields that are set and leaves nil ones
// as they are. Unlike CreateMeeting, a taken slug is a conflict.
type UpdateMeetingRequest struct {
	ProjectID   *int       `json:"project_id,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Slug        *string    `json:"slug,omitempty"`
}

type repository interface {
	database.MeetingRepository
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
}

type service struct {
	repo repository
	now  func() time.Time
}

// NewService creates a new meeting service
func NewService(repo repository) Service {
	return &service{repo: repo, now: time.Now}
}

// ListMeetings returns a project's meetings, newest first
func (s *service) ListMeetings(ctx context.Context, projectID int) ([]*models.Meeting, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetMeetingsByProject(ctx, projectID)
}

// GetMeeting retrieves a meeting by ID
func (s *service) GetMeeting(ctx context.Context, id int) (*models.Meeting, error) {
	if id <= 0 {
		return nil, ErrInvalidMeetingID
	}
	meeting, err := s.repo.GetMeetingByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrMeetingNotFound
	}
	return meeting, err
}

// GetMeetingBySlug retrieves a meeting by its slug
func (s *service) GetMeetingBySlug(ctx context.Context, slug string) (*models.Meeting, error) {
	meeting, err := s.repo.GetMeetingBySlug(ctx, slug)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrMeetingNotFound
	}
	return meeting, err
}

// CreateMeeting validates, picks a free slug and stores the meeting.
// A taken slug gets the current timestamp appended once.
func (s *service) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*models.Meeting, error) {
	req.Title = strings.TrimSpace(req.Title)
	switch {
	case req.ProjectID <= 0:
		return nil, ErrInvalidProjectID
	case req.Title == "":
		return nil, ErrEmptyTitle
	case len(req.Title) > models.MaxTitleLength:
		return nil, ErrTitleTooLong
	case req.Date.IsZero():
		return nil, ErrMissingDate
	}

	if _, err := s.repo.GetProjectByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project %d: %w", req.ProjectID, err)
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = GenerateSlug(req.Title, req.ProjectID, s.now())
	}
	_, err := s.repo.GetMeetingBySlug(ctx, slug)
	switch {
	case err == nil:
		slug = fmt.Sprintf("%s-%d", slug, s.now().UnixMilli())
	case !errors.Is(err, database.ErrNotFound):
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	meeting, err := s.repo.CreateMeeting(ctx, database.MeetingParams{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Slug:        slug,
		Date:        req.Date,
		Description: req.Description,
	})
	if errors.Is(err, database.ErrConflict) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	slog.Info("meeting created", "meeting_id", meeting.ID, "project_id", meeting.ProjectID, "slug", meeting.Slug)
	return meeting, nil
}

// UpdateMeeting applies a partial update to an existing meeting
func (s *service) UpdateMeeting(ctx context.Context, id int, req UpdateMeetingRequest) (*models.Meeting, error) {
	if id <= 0 {
		return nil, ErrInvalidMeetingID
	}
	existing, err := s.repo.GetMeetingByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting %d: %w", id, err)
	}

	params := database.MeetingParams{
		ProjectID:   existing.ProjectID,
		Title:       existing.Title,
		Slug:        existing.Slug,
		Date:        existing.Date,
		Description: existing.Description,
	}

	if req.Title != nil {
		params.Title = strings.TrimSpace(*req.Title)
		switch {
		case params.Title == "":
			return nil, ErrEmptyTitle
		case len(params.Title) > models.MaxTitleLength:
			return nil, ErrTitleTooLong
		}
	}
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, ErrMissingDate
		}
		params.Date = *req.Date
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Slug != nil {
		params.Slug = strings.TrimSpace(*req.Slug)
		if params.Slug == "" {
			return nil, ErrEmptySlug
		}
	}
	if req.ProjectID != nil && *req.ProjectID != existing.ProjectID {
		if *req.ProjectID <= 0 {
			return nil, ErrInvalidProjectID
		}
		if _, err := s.repo.GetProjectByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to get project %d: %w", *req.ProjectID, err)
		}
		params.ProjectID = *req.ProjectID
	}

	meeting, err := s.repo.UpdateMeeting(ctx, id, params)
	switch {
	case errors.Is(err, database.ErrConflict):
		return nil, ErrDuplicateSlug
	case errors.Is(err, database.ErrNotFound):
		return nil, ErrMeetingNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to update meeting %d: %w", id, err)
	}

	slog.Info("meeting updated", "meeting_id", meeting.ID, "project_id", meeting.ProjectID, "slug", meeting.Slug)
	return meeting, nil
}

// DeleteMeeting removes a meeting; its tasks lose the meeting reference
func (s *service) DeleteMeeting(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidMeetingID
	}
	err := s.repo.DeleteMeeting(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return ErrMeetingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete meeting %d: %w", id, err)
	}

	slog.Info("meeting deleted", "meeting_id", id)
	return nil
}
