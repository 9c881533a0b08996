package app

import (
	"context"
	"testing"

	"github.com/thenoetrevino/tablero/internal/database"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

func TestOpen(t *testing.T) {
	app, err := Open(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	if app.TaskService == nil {
		t.Error("Expected TaskService to be initialized")
	}
	if app.ProjectService == nil {
		t.Error("Expected ProjectService to be initialized")
	}
	if app.MeetingService == nil {
		t.Error("Expected MeetingService to be initialized")
	}
	if app.Repo() == nil {
		t.Error("Expected Repo to be set")
	}
}

func TestServicesShareDatabase(t *testing.T) {
	ctx := context.Background()
	app, err := Open(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = app.Close() }()

	project, err := app.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{Title: "Launch"})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	task, err := app.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{Title: "plan", ProjectID: &project.ID})
	if err != nil {
		t.Fatalf("CreateTask through service failed: %v", err)
	}
	if task.ProjectID == nil || *task.ProjectID != project.ID {
		t.Errorf("task not linked to project: %v", task.ProjectID)
	}
}
