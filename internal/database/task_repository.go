package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskRepo handles all task-related database operations.
//
// A column is the set of tasks sharing a project and a status. Every write
// leaves the serials of the columns it touched contiguous from 1.
type TaskRepo struct {
	db *sql.DB
}

const taskColumns = `id, title, description, task_status, serial, project_id, meeting_id, created_at, updated_at`

// GetBoard returns the tasks matching filter grouped by status, each column
// ordered by serial. Every status is present, empty columns included.
func (r *TaskRepo) GetBoard(ctx context.Context, filter TaskFilter) (map[models.Status][]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1 = 1`
	var args []any
	if filter.ProjectID > 0 {
		query += ` AND project_id = ?`
		args = append(args, filter.ProjectID)
	}
	if filter.MeetingID > 0 {
		query += ` AND meeting_id = ?`
		args = append(args, filter.MeetingID)
	}
	query += ` ORDER BY serial, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query board: %w", err)
	}
	defer closeRows(rows)

	board := make(map[models.Status][]*models.Task, len(models.Statuses()))
	for _, status := range models.Statuses() {
		board[status] = []*models.Task{}
	}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		board[task.Status] = append(board[task.Status], task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return board, nil
}

// GetTaskByID retrieves a task by its ID
func (r *TaskRepo) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, mapError(err))
	}
	return task, nil
}

// CreateTask appends a task to the bottom of its column
func (r *TaskRepo) CreateTask(ctx context.Context, params TaskParams) (*models.Task, error) {
	projectID := ptrToNullInt64(params.ProjectID)

	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(serial), 0) + 1 FROM tasks WHERE project_id IS ? AND task_status = ?`,
			projectID, params.Status,
		).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to get next serial: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (title, description, task_status, serial, project_id, meeting_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			params.Title, nullString(params.Description), params.Status, next,
			projectID, ptrToNullInt64(params.MeetingID),
		)
		if err != nil {
			return fmt.Errorf("failed to insert task '%s': %w", params.Title, mapError(err))
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get task ID after insert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetTaskByID(ctx, int(id))
}

// MoveTask puts a task into status at position serial (1-based, clamped)
// and renumbers the source and destination columns in one transaction.
//
// The remaining tasks keep their relative order, so a client that only
// rewrote the moved task's serial ends up with the same ordering it shows.
func (r *TaskRepo) MoveTask(ctx context.Context, taskID int, status models.Status, serial int) (*models.Task, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			from      models.Status
			projectID sql.NullInt64
		)
		err := tx.QueryRowContext(ctx,
			`SELECT task_status, project_id FROM tasks WHERE id = ?`, taskID,
		).Scan(&from, &projectID)
		if err != nil {
			return fmt.Errorf("failed to get task %d: %w", taskID, mapError(err))
		}

		source, err := columnIDs(ctx, tx, projectID, from, taskID)
		if err != nil {
			return err
		}

		dest := source
		if from != status {
			dest, err = columnIDs(ctx, tx, projectID, status, taskID)
			if err != nil {
				return err
			}
		}

		idx := min(max(serial-1, 0), len(dest))
		dest = append(dest[:idx:idx], append([]int{taskID}, dest[idx:]...)...)

		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET task_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			status, taskID,
		); err != nil {
			return fmt.Errorf("failed to move task %d: %w", taskID, err)
		}

		if from != status {
			if err := renumber(ctx, tx, source); err != nil {
				return err
			}
		}
		return renumber(ctx, tx, dest)
	})
	if err != nil {
		return nil, err
	}
	return r.GetTaskByID(ctx, taskID)
}

// DeleteTask removes a task and closes the gap in its column
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			status    models.Status
			projectID sql.NullInt64
		)
		err := tx.QueryRowContext(ctx,
			`SELECT task_status, project_id FROM tasks WHERE id = ?`, id,
		).Scan(&status, &projectID)
		if err != nil {
			return fmt.Errorf("failed to get task %d: %w", id, mapError(err))
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete task %d: %w", id, err)
		}

		remaining, err := columnIDs(ctx, tx, projectID, status, id)
		if err != nil {
			return err
		}
		return renumber(ctx, tx, remaining)
	})
}

// columnIDs lists a column's task IDs in serial order, leaving out exclude
func columnIDs(ctx context.Context, tx *sql.Tx, projectID sql.NullInt64, status models.Status, exclude int) ([]int, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM tasks WHERE project_id IS ? AND task_status = ? AND id != ? ORDER BY serial, id`,
		projectID, status, exclude,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s column: %w", status, err)
	}
	defer closeRows(rows)

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// renumber writes serial = position+1 for each id
func renumber(ctx context.Context, tx *sql.Tx, ids []int) error {
	stmt, err := tx.PrepareContext(ctx, `UPDATE tasks SET serial = ? WHERE id = ? AND serial != ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare renumber: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i+models.FirstSerial, id, i+models.FirstSerial); err != nil {
			return fmt.Errorf("failed to renumber task %d: %w", id, err)
		}
	}
	return nil
}

func scanTask(s scanner) (*models.Task, error) {
	var (
		task        models.Task
		description sql.NullString
		projectID   sql.NullInt64
		meetingID   sql.NullInt64
	)
	err := s.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Status,
		&task.Serial,
		&projectID,
		&meetingID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Description = description.String
	task.ProjectID = nullInt64ToPtr(projectID)
	task.MeetingID = nullInt64ToPtr(meetingID)
	return &task, nil
}
