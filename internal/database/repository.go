package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TaskRepo
	*ProjectRepo
	*MeetingRepo
}

// Compile-time verification that Repository satisfies DataStore
var _ DataStore = (*Repository)(nil)

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		TaskRepo:    &TaskRepo{db: db},
		ProjectRepo: &ProjectRepo{db: db},
		MeetingRepo: &MeetingRepo{db: db},
	}
}
