package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestDBFile creates a file-based database for testing persistence across restarts
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "tablero-test.db")
	db, err := InitDB(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db, path
}

// ============================================================================
// FIXTURES
// ============================================================================

func createTestProject(t *testing.T, repo *Repository, title string) *models.Project {
	t.Helper()
	project, err := repo.CreateProject(context.Background(), title, "")
	if err != nil {
		t.Fatalf("Failed to create project %q: %v", title, err)
	}
	return project
}

func createTestTask(t *testing.T, repo *Repository, title string, status models.Status, projectID int) *models.Task {
	t.Helper()
	params := TaskParams{Title: title, Status: status}
	if projectID > 0 {
		params.ProjectID = &projectID
	}
	task, err := repo.CreateTask(context.Background(), params)
	if err != nil {
		t.Fatalf("Failed to create task %q: %v", title, err)
	}
	return task
}

// columnOrder returns the IDs and serials of one board column
func columnOrder(t *testing.T, repo *Repository, projectID int, status models.Status) ([]int, []int) {
	t.Helper()
	board, err := repo.GetBoard(context.Background(), TaskFilter{ProjectID: projectID})
	if err != nil {
		t.Fatalf("Failed to get board: %v", err)
	}
	var ids, serials []int
	for _, task := range board[status] {
		ids = append(ids, task.ID)
		serials = append(serials, task.Serial)
	}
	return ids, serials
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
