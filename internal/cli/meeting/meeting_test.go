package meeting

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func createProject(t *testing.T, ctx context.Context) int {
	t.Helper()
	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		t.Fatalf("Failed to get CLI: %v", err)
	}
	p, err := c.Client.CreateProject(ctx, api.CreateProjectRequest{Title: "Alpha"})
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return p.ID
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-05-04")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if !got.Equal(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate = %v", got)
	}

	got, err = ParseDate("2026-05-04T15:30:00Z")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if got.Hour() != 15 {
		t.Errorf("ParseDate hour = %d, want 15", got.Hour())
	}

	if _, err := ParseDate("May 4th"); err == nil {
		t.Error("ParseDate should reject free-form dates")
	}
}

func TestCreateAndListMeetings(t *testing.T) {
	ctx := testutil.SetupCLITest(t)
	projectID := strconv.Itoa(createProject(t, ctx))

	res := testutil.ExecuteCommand(t, ctx, CreateCmd(),
		"--project", projectID, "--title", "Sprint Review", "--date", "2026-05-04", "--json")
	if res.Err != nil {
		t.Fatalf("create failed: %v (%s)", res.Err, res.Stdout)
	}
	meeting := testutil.ParseJSON(t, res.Stdout)["meeting"].(map[string]any)
	slug, _ := meeting["slug"].(string)
	if !strings.HasPrefix(slug, projectID+"-sprint-review-") {
		t.Errorf("slug = %q", slug)
	}

	res = testutil.ExecuteCommand(t, ctx, CreateCmd(),
		"--project", projectID, "--title", "Retro", "--date", "2026-06-01", "--slug", "retro-june")
	if res.Err != nil {
		t.Fatalf("create failed: %v", res.Err)
	}

	// A taken slug is made unique instead of failing
	res = testutil.ExecuteCommand(t, ctx, CreateCmd(),
		"--project", projectID, "--title", "Retro again", "--date", "2026-06-02", "--slug", "retro-june", "--json")
	if res.Err != nil {
		t.Fatalf("create failed: %v", res.Err)
	}
	second := testutil.ParseJSON(t, res.Stdout)["meeting"].(map[string]any)["slug"].(string)
	if second == "retro-june" || !strings.HasPrefix(second, "retro-june-") {
		t.Errorf("second slug = %q, want retro-june-<millis>", second)
	}

	res = testutil.ExecuteCommand(t, ctx, ListCmd(), "--project", projectID)
	if res.Err != nil {
		t.Fatalf("list failed: %v", res.Err)
	}
	// Newest first
	retro := strings.Index(res.Stdout, "Retro")
	review := strings.Index(res.Stdout, "Sprint Review")
	if retro < 0 || review < 0 || retro > review {
		t.Errorf("Expected Retro before Sprint Review, got %q", res.Stdout)
	}
}

func TestMeetingCommandErrors(t *testing.T) {
	ctx := testutil.SetupCLITest(t)

	res := testutil.ExecuteCommand(t, ctx, CreateCmd(), "--project", "1", "--title", "x", "--date", "tomorrow")
	if cli.ExitCode(res.Err) != cli.ExitValidation {
		t.Errorf("bad date exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitValidation)
	}

	res = testutil.ExecuteCommand(t, ctx, CreateCmd(), "--project", "42", "--title", "x", "--date", "2026-01-01")
	if cli.ExitCode(res.Err) != cli.ExitNotFound {
		t.Errorf("unknown project exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitNotFound)
	}

	res = testutil.ExecuteCommand(t, ctx, ListCmd(), "--project", "0")
	if cli.ExitCode(res.Err) != cli.ExitUsage {
		t.Errorf("zero project exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitUsage)
	}
}

func TestUpdateAndDeleteMeeting(t *testing.T) {
	ctx := testutil.SetupCLITest(t)
	projectID := strconv.Itoa(createProject(t, ctx))

	res := testutil.ExecuteCommand(t, ctx, CreateCmd(),
		"--project", projectID, "--title", "Retro", "--date", "2026-06-01", "--slug", "retro", "--json")
	if res.Err != nil {
		t.Fatalf("create failed: %v", res.Err)
	}
	id := int(testutil.ParseJSON(t, res.Stdout)["meeting"].(map[string]any)["id"].(float64))
	meetingID := strconv.Itoa(id)

	res = testutil.ExecuteCommand(t, ctx, CreateCmd(),
		"--project", projectID, "--title", "Demo", "--date", "2026-06-02", "--slug", "demo")
	if res.Err != nil {
		t.Fatalf("create failed: %v", res.Err)
	}

	res = testutil.ExecuteCommand(t, ctx, UpdateCmd(), meetingID, "--title", "Retro (moved)", "--date", "2026-06-08", "--json")
	if res.Err != nil {
		t.Fatalf("update failed: %v (%s)", res.Err, res.Stdout)
	}
	updated := testutil.ParseJSON(t, res.Stdout)["meeting"].(map[string]any)
	if updated["title"] != "Retro (moved)" || updated["slug"] != "retro" {
		t.Errorf("unexpected meeting after update: %v", updated)
	}

	res = testutil.ExecuteCommand(t, ctx, UpdateCmd(), meetingID, "--slug", "demo")
	if cli.ExitCode(res.Err) != cli.ExitConflict {
		t.Errorf("taken slug exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitConflict)
	}

	res = testutil.ExecuteCommand(t, ctx, UpdateCmd(), meetingID)
	if cli.ExitCode(res.Err) != cli.ExitUsage {
		t.Errorf("empty update exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitUsage)
	}

	res = testutil.ExecuteCommand(t, ctx, UpdateCmd(), "999", "--title", "x")
	if cli.ExitCode(res.Err) != cli.ExitNotFound {
		t.Errorf("unknown meeting exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitNotFound)
	}

	res = testutil.ExecuteCommand(t, ctx, DeleteCmd(), "--id", meetingID, "--quiet")
	if res.Err != nil {
		t.Fatalf("delete failed: %v", res.Err)
	}
	if strings.TrimSpace(res.Stdout) != meetingID {
		t.Errorf("quiet delete output = %q, want %q", res.Stdout, meetingID)
	}

	res = testutil.ExecuteCommand(t, ctx, DeleteCmd(), meetingID)
	if cli.ExitCode(res.Err) != cli.ExitNotFound {
		t.Errorf("second delete exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitNotFound)
	}
}
