package models

import "time"

// Project groups meetings and tasks
type Project struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetID satisfies the quiet-mode ID extraction of the CLI formatter
func (p *Project) GetID() int {
	return p.ID
}
