package database

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProjectRepo_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	created, err := repo.CreateProject(ctx, "Launch", "Q3 launch")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if created.ID == 0 || created.Title != "Launch" || created.Description != "Q3 launch" {
		t.Errorf("unexpected project: %+v", created)
	}

	createTestProject(t, repo, "Hiring")

	projects, err := repo.GetAllProjects(ctx)
	if err != nil {
		t.Fatalf("GetAllProjects failed: %v", err)
	}
	if len(projects) != 2 || projects[0].Title != "Launch" || projects[1].Title != "Hiring" {
		t.Errorf("unexpected project list: %v", projects)
	}
}

func TestProjectRepo_DuplicateTitle(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	createTestProject(t, repo, "Launch")

	_, err := repo.CreateProject(context.Background(), "Launch", "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestProjectRepo_NotFound(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetProjectByID(context.Background(), 3)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMeetingRepo_CreateListAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	p := createTestProject(t, repo, "Launch")

	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	first, err := repo.CreateMeeting(ctx, MeetingParams{ProjectID: p.ID, Title: "Kickoff", Slug: "1-kickoff", Date: early})
	if err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	if _, err := repo.CreateMeeting(ctx, MeetingParams{ProjectID: p.ID, Title: "Review", Slug: "1-review", Date: late, Description: "retro"}); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	meetings, err := repo.GetMeetingsByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetMeetingsByProject failed: %v", err)
	}
	if len(meetings) != 2 || meetings[0].Title != "Review" {
		t.Fatalf("meetings should be newest first: %v", meetings)
	}
	if !meetings[0].Date.Equal(late) {
		t.Errorf("date round trip: got %v want %v", meetings[0].Date, late)
	}

	bySlug, err := repo.GetMeetingBySlug(ctx, "1-kickoff")
	if err != nil {
		t.Fatalf("GetMeetingBySlug failed: %v", err)
	}
	if bySlug.ID != first.ID {
		t.Errorf("slug lookup returned meeting %d, want %d", bySlug.ID, first.ID)
	}

	if _, err := repo.GetMeetingBySlug(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.CreateMeeting(ctx, MeetingParams{ProjectID: p.ID, Title: "Again", Slug: "1-kickoff", Date: early}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for taken slug, got %v", err)
	}

	empty, err := repo.GetMeetingsByProject(ctx, 999)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("unknown project should list no meetings, got %v, %v", empty, err)
	}
}

func TestMeetingRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	p := createTestProject(t, repo, "Launch")
	date := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	kickoff, err := repo.CreateMeeting(ctx, MeetingParams{ProjectID: p.ID, Title: "Kickoff", Slug: "kickoff", Date: date})
	if err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}
	if _, err := repo.CreateMeeting(ctx, MeetingParams{ProjectID: p.ID, Title: "Review", Slug: "review", Date: date}); err != nil {
		t.Fatalf("CreateMeeting failed: %v", err)
	}

	moved := date.Add(48 * time.Hour)
	updated, err := repo.UpdateMeeting(ctx, kickoff.ID, MeetingParams{ProjectID: p.ID, Title: "Kickoff v2", Slug: "kickoff", Date: moved, Description: "moved"})
	if err != nil {
		t.Fatalf("UpdateMeeting failed: %v", err)
	}
	if updated.Title != "Kickoff v2" || updated.Description != "moved" || !updated.Date.Equal(moved) {
		t.Errorf("unexpected meeting after update: %+v", updated)
	}

	if _, err := repo.UpdateMeeting(ctx, kickoff.ID, MeetingParams{ProjectID: p.ID, Title: "x", Slug: "review", Date: date}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for taken slug, got %v", err)
	}
	if _, err := repo.UpdateMeeting(ctx, 999, MeetingParams{ProjectID: p.ID, Title: "x", Slug: "x", Date: date}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing meeting, got %v", err)
	}

	// Tasks survive their meeting with the reference cleared
	projectID, meetingID := p.ID, kickoff.ID
	task, err := repo.CreateTask(ctx, TaskParams{Title: "notes", Status: "pending", ProjectID: &projectID, MeetingID: &meetingID})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := repo.DeleteMeeting(ctx, kickoff.ID); err != nil {
		t.Fatalf("DeleteMeeting failed: %v", err)
	}
	if err := repo.DeleteMeeting(ctx, kickoff.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID failed: %v", err)
	}
	if got.MeetingID != nil {
		t.Errorf("task meeting should be cleared, got %d", *got.MeetingID)
	}
}
