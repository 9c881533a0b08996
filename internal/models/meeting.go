package models

import "time"

// Meeting is a dated session within a project.
// Tasks may optionally reference the meeting they were raised in.
type Meeting struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"projectId"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetID satisfies the quiet-mode ID extraction of the CLI formatter
func (m *Meeting) GetID() int {
	return m.ID
}
