package models

import "time"

// Task represents a single card on the kanban board.
// Serial is the 1-based position of the task inside its status column.
type Task struct {
	ID          int       `json:"id"`
	Serial      int       `json:"serial"`
	Status      Status    `json:"taskStatus"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ProjectID   *int      `json:"projectId,omitempty"`
	MeetingID   *int      `json:"meetingId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a shallow copy of the task.
// The payload pointers are shared; the reorder code never writes through them.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// GetID satisfies the quiet-mode ID extraction of the CLI formatter
func (t *Task) GetID() int {
	return t.ID
}
