// Package board holds the local kanban state and the pure reorder logic
// that computes new column contents after a drag-and-drop move.
package board

import "github.com/thenoetrevino/tablero/internal/models"

// Board maps each status column to its ordered tasks.
// Slices stored in a Board are treated as immutable: every change builds a
// new slice, so two boards may safely share untouched columns.
type Board map[models.Status][]*models.Task

// Column returns the ordered tasks for status.
// Absent columns read as an empty, non-nil slice.
func (b Board) Column(status models.Status) []*models.Task {
	if tasks, ok := b[status]; ok && tasks != nil {
		return tasks
	}
	return []*models.Task{}
}

// Find locates a task anywhere on the board
func (b Board) Find(taskID int) (models.Status, int, bool) {
	for status, tasks := range b {
		if idx := indexOf(tasks, taskID); idx >= 0 {
			return status, idx, true
		}
	}
	return "", -1, false
}

// TaskCount returns the number of tasks across all columns
func (b Board) TaskCount() int {
	total := 0
	for _, tasks := range b {
		total += len(tasks)
	}
	return total
}

// Clone returns a new map sharing the column slices of b
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for status, tasks := range b {
		out[status] = tasks
	}
	return out
}

// SerialIssue describes a column whose serials are not 1..N in slice order
type SerialIssue struct {
	Status models.Status
	Index  int
	TaskID int
	Serial int
}

// SerialIssues reports every task whose serial does not equal index+1.
// Columns are visited in board order so the result is deterministic.
func (b Board) SerialIssues() []SerialIssue {
	var issues []SerialIssue
	for _, status := range models.Statuses() {
		for i, task := range b[status] {
			if task.Serial != i+1 {
				issues = append(issues, SerialIssue{
					Status: status,
					Index:  i,
					TaskID: task.ID,
					Serial: task.Serial,
				})
			}
		}
	}
	return issues
}

// indexOf returns the slice index of taskID, or -1
func indexOf(tasks []*models.Task, taskID int) int {
	for i, t := range tasks {
		if t != nil && t.ID == taskID {
			return i
		}
	}
	return -1
}
