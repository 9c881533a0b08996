package tui

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/boardsync"
	"github.com/thenoetrevino/tablero/internal/models"
)

// fakeService serves a fixed board per project and records move requests
type fakeService struct {
	mu       sync.Mutex
	projects []*models.Project
	boards   map[int]map[models.Status][]models.Task
	updates  []api.UpdateTaskRequest
	failMove error
}

func newFakeService() *fakeService {
	return &fakeService{
		projects: []*models.Project{{ID: 1, Title: "Alpha"}, {ID: 2, Title: "Beta"}},
		boards: map[int]map[models.Status][]models.Task{
			1: {
				models.StatusPending: {
					{ID: 1, Serial: 1, Status: models.StatusPending, Title: "write agenda"},
					{ID: 2, Serial: 2, Status: models.StatusPending, Title: "book room"},
				},
				models.StatusInProgress: {
					{ID: 3, Serial: 1, Status: models.StatusInProgress, Title: "draft notes"},
				},
			},
			2: {
				models.StatusHold: {
					{ID: 9, Serial: 1, Status: models.StatusHold, Title: "beta task"},
				},
			},
		},
	}
}

func (f *fakeService) FetchBoard(_ context.Context, filter api.BoardFilter) (map[models.Status][]*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[models.Status][]*models.Task{}
	for status, tasks := range f.boards[filter.ProjectID] {
		for _, task := range tasks {
			out[status] = append(out[status], &task)
		}
	}
	return out, nil
}

func (f *fakeService) UpdateTask(_ context.Context, req api.UpdateTaskRequest) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, req)
	if f.failMove != nil {
		return nil, f.failMove
	}
	return &models.Task{ID: req.TaskID, Serial: req.Serial, Status: req.TaskStatus}, nil
}

func (f *fakeService) ListProjects(context.Context) ([]*models.Project, error) {
	return f.projects, nil
}

func (f *fakeService) ListMeetings(context.Context, int) ([]*models.Meeting, error) {
	return []*models.Meeting{}, nil
}

func (f *fakeService) lastUpdate() api.UpdateTaskRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[len(f.updates)-1]
}

// setupModel builds a loaded, sized model over a fake service
func setupModel(t *testing.T) (Model, *fakeService, *boardsync.Session) {
	t.Helper()
	svc := newFakeService()
	session := boardsync.NewSession(svc)
	t.Cleanup(func() { _ = session.Close() })

	m := New(context.Background(), session, nil)
	m = update(t, m, loadBoard(context.Background(), session, true)())
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	return m, svc, session
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m Model, text string) Model {
	t.Helper()
	return update(t, m, keyPress(text))
}

func keyPress(text string) tea.KeyPressMsg {
	switch text {
	case "right":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyRight})
	case "left":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyLeft})
	case "down":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
	case "up":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
	}
	r := []rune(text)[0]
	return tea.KeyPressMsg(tea.Key{Text: text, Code: r})
}

// drainOutcome waits for in-flight moves and feeds the next outcome to m
func drainOutcome(t *testing.T, m Model, session *boardsync.Session) Model {
	t.Helper()
	session.Wait()
	return update(t, m, waitForOutcome(session.Outcomes())())
}

func columnIDs(session *boardsync.Session, status models.Status) []int {
	var ids []int
	for _, task := range session.Column(status) {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestInitialLoadSelectsFirstProject(t *testing.T) {
	m, _, session := setupModel(t)

	assert.Equal(t, 1, session.Filter().ProjectID)
	assert.Equal(t, []int{1, 2}, columnIDs(session, models.StatusPending))

	status, idx := m.Selection()
	assert.Equal(t, models.StatusPending, status)
	assert.Equal(t, 0, idx)

	content := m.View().Content
	assert.Contains(t, content, "Alpha")
	assert.Contains(t, content, "write agenda")
	assert.Contains(t, content, "In Progress (1)")
}

func TestViewBeforeResize(t *testing.T) {
	svc := newFakeService()
	session := boardsync.NewSession(svc)
	t.Cleanup(func() { _ = session.Close() })

	m := New(context.Background(), session, nil)
	assert.Equal(t, "Loading...", m.View().Content)
}

func TestNavigation(t *testing.T) {
	m, _, _ := setupModel(t)

	m = press(t, m, "j")
	_, idx := m.Selection()
	assert.Equal(t, 1, idx)

	// Bottom of the column is a hard stop
	m = press(t, m, "down")
	_, idx = m.Selection()
	assert.Equal(t, 1, idx)

	// Moving to a shorter column clamps the cursor
	m = press(t, m, "l")
	status, idx := m.Selection()
	assert.Equal(t, models.StatusInProgress, status)
	assert.Equal(t, 0, idx)

	m = press(t, m, "left")
	m = press(t, m, "h")
	status, _ = m.Selection()
	assert.Equal(t, models.StatusPending, status)
}

func TestMoveTaskRightAppendsAndPersists(t *testing.T) {
	m, svc, session := setupModel(t)

	m = press(t, m, "L")

	assert.Equal(t, []int{2}, columnIDs(session, models.StatusPending))
	assert.Equal(t, []int{3, 1}, columnIDs(session, models.StatusInProgress))

	status, idx := m.Selection()
	assert.Equal(t, models.StatusInProgress, status)
	assert.Equal(t, 1, idx, "selection follows the moved task")

	m = drainOutcome(t, m, session)
	assert.Equal(t, api.UpdateTaskRequest{TaskID: 1, Serial: 2, TaskStatus: models.StatusInProgress}, svc.lastUpdate())
	assert.Nil(t, m.Notification())
	assert.NoError(t, session.Err())
}

func TestMoveTaskLeftAtFirstColumnIsIgnored(t *testing.T) {
	m, svc, session := setupModel(t)

	m = press(t, m, "H")
	session.Wait()

	assert.Equal(t, []int{1, 2}, columnIDs(session, models.StatusPending))
	svc.mu.Lock()
	assert.Empty(t, svc.updates)
	svc.mu.Unlock()
	status, _ := m.Selection()
	assert.Equal(t, models.StatusPending, status)
}

func TestMoveTaskDownWithinColumn(t *testing.T) {
	m, svc, session := setupModel(t)

	m = press(t, m, "J")
	assert.Equal(t, []int{2, 1}, columnIDs(session, models.StatusPending))
	_, idx := m.Selection()
	assert.Equal(t, 1, idx)

	drainOutcome(t, m, session)
	assert.Equal(t, api.UpdateTaskRequest{TaskID: 1, Serial: 2, TaskStatus: models.StatusPending}, svc.lastUpdate())
}

func TestFailedMoveRevertsAndNotifies(t *testing.T) {
	m, svc, session := setupModel(t)
	svc.failMove = &api.Error{Kind: api.KindServer, StatusCode: http.StatusInternalServerError, Message: "database unavailable"}

	m = press(t, m, "L")
	m = drainOutcome(t, m, session)

	assert.Equal(t, []int{1, 2}, columnIDs(session, models.StatusPending))
	assert.Equal(t, []int{3}, columnIDs(session, models.StatusInProgress))

	note := m.Notification()
	require.NotNil(t, note)
	assert.Equal(t, LevelError, note.Level)
	assert.Contains(t, note.Message, "database unavailable")
	assert.Contains(t, note.Message, "reverted")

	assert.Contains(t, m.View().Content, "sync error")

	// Refresh clears the error flag
	m = press(t, m, "r")
	assert.NoError(t, session.Err())
}

func TestClearNotificationOnlyClearsMatchingID(t *testing.T) {
	m, _, _ := setupModel(t)
	m.notify(LevelInfo, "first")
	m.notify(LevelInfo, "second")

	m = update(t, m, clearNotificationMsg{id: 1})
	require.NotNil(t, m.Notification())
	assert.Equal(t, "second", m.Notification().Message)

	m = update(t, m, clearNotificationMsg{id: 2})
	assert.Nil(t, m.Notification())
}

func TestSwitchProject(t *testing.T) {
	m, _, session := setupModel(t)

	updated, cmd := m.Update(keyPress("}"))
	require.NotNil(t, cmd)
	m = updated.(Model)
	assert.Equal(t, 2, session.Filter().ProjectID)

	m = update(t, m, cmd())
	assert.Equal(t, []int{9}, columnIDs(session, models.StatusHold))
	assert.Empty(t, columnIDs(session, models.StatusPending))
	assert.True(t, strings.Contains(m.View().Content, "Beta"))

	// Wraps around
	_, cmd = m.Update(keyPress("}"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, session.Filter().ProjectID)
}

func TestHelpToggleAndQuit(t *testing.T) {
	m, _, _ := setupModel(t)

	m = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	m = press(t, m, "?")
	assert.False(t, m.help.ShowAll)

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestOutcomesClosed(t *testing.T) {
	m, _, session := setupModel(t)
	require.NoError(t, session.Close())

	msg := waitForOutcome(session.Outcomes())()
	assert.IsType(t, outcomesClosedMsg{}, msg)
	_, cmd := m.Update(msg)
	assert.Nil(t, cmd)
}
