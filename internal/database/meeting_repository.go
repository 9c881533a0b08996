package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// MeetingRepo handles all meeting-related database operations.
type MeetingRepo struct {
	db *sql.DB
}

const meetingColumns = `id, project_id, title, slug, date, description, created_at`

// CreateMeeting inserts a meeting. The slug must already be set;
// a taken slug yields ErrConflict.
func (r *MeetingRepo) CreateMeeting(ctx context.Context, params MeetingParams) (*models.Meeting, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO meetings (project_id, title, slug, date, description) VALUES (?, ?, ?, ?, ?)`,
		params.ProjectID, params.Title, params.Slug, params.Date.UTC(), nullString(params.Description),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert meeting '%s': %w", params.Title, mapError(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting ID after insert: %w", err)
	}
	return r.GetMeetingByID(ctx, int(id))
}

// UpdateMeeting overwrites every editable field of a meeting.
// A missing meeting yields ErrNotFound, a taken slug ErrConflict.
func (r *MeetingRepo) UpdateMeeting(ctx context.Context, id int, params MeetingParams) (*models.Meeting, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE meetings SET project_id = ?, title = ?, slug = ?, date = ?, description = ? WHERE id = ?`,
		params.ProjectID, params.Title, params.Slug, params.Date.UTC(), nullString(params.Description), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update meeting %d: %w", id, mapError(err))
	}
	if err := requireAffected(result, "meeting", id); err != nil {
		return nil, err
	}
	return r.GetMeetingByID(ctx, id)
}

// DeleteMeeting removes a meeting. Its tasks stay on the board with the
// meeting reference cleared.
func (r *MeetingRepo) DeleteMeeting(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting %d: %w", id, err)
	}
	return requireAffected(result, "meeting", id)
}

// GetMeetingByID retrieves a meeting by its ID
func (r *MeetingRepo) GetMeetingByID(ctx context.Context, id int) (*models.Meeting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = ?`, id)
	meeting, err := scanMeeting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting %d: %w", id, mapError(err))
	}
	return meeting, nil
}

// GetMeetingBySlug retrieves a meeting by its unique slug
func (r *MeetingRepo) GetMeetingBySlug(ctx context.Context, slug string) (*models.Meeting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE slug = ?`, slug)
	meeting, err := scanMeeting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting %q: %w", slug, mapError(err))
	}
	return meeting, nil
}

// GetMeetingsByProject lists a project's meetings, newest first
func (r *MeetingRepo) GetMeetingsByProject(ctx context.Context, projectID int) ([]*models.Meeting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE project_id = ? ORDER BY date DESC, id DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings for project %d: %w", projectID, err)
	}
	defer closeRows(rows)

	meetings := []*models.Meeting{}
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}
	return meetings, nil
}

func scanMeeting(s scanner) (*models.Meeting, error) {
	var (
		meeting     models.Meeting
		description sql.NullString
	)
	err := s.Scan(
		&meeting.ID,
		&meeting.ProjectID,
		&meeting.Title,
		&meeting.Slug,
		&meeting.Date,
		&description,
		&meeting.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	meeting.Description = description.String
	return &meeting, nil
}
