// Package app wires the server-side services together.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/database"
	meetingservice "github.com/thenoetrevino/tablero/internal/services/meeting"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db   *sql.DB
	repo database.DataStore

	TaskService    taskservice.Service
	ProjectService projectservice.Service
	MeetingService meetingservice.Service
}

// New creates a new App with all services initialized.
func New(db *sql.DB) *App {
	repo := database.NewRepository(db)
	return &App{
		db:             db,
		repo:           repo,
		TaskService:    taskservice.NewService(repo),
		ProjectService: projectservice.NewService(repo),
		MeetingService: meetingservice.NewService(repo),
	}
}

// Open initializes the database at dbPath and builds an App on it
func Open(ctx context.Context, dbPath string) (*App, error) {
	db, err := database.InitDB(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return New(db), nil
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close releases the database
func (a *App) Close() error {
	return a.db.Close()
}
