// Package tui is the interactive kanban board.
package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/boardsync"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Level is the severity of an inline notification
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notification is a transient message shown in the header
type Notification struct {
	ID      int
	Level   Level
	Message string
}

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	session *boardsync.Session
	keys    keyMap
	help    help.Model
	styles  styles
	logger  *slog.Logger

	width  int
	height int

	// selectedColumn indexes models.Statuses()
	selectedColumn int
	selectedTask   int

	notification *Notification
	nextNoteID   int
	loaded       bool
}

// New creates the board model. The session's filters select the initial
// project; with no project filter the first project is used.
func New(ctx context.Context, session *boardsync.Session, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	return Model{
		ctx:     ctx,
		session: session,
		keys:    newKeyMap(cfg.KeyMappings),
		help:    help.New(),
		styles:  newStyles(cfg.Theme),
		logger:  slog.Default(),
	}
}

// Init loads the board and starts listening for move outcomes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadBoard(m.ctx, m.session, true),
		waitForOutcome(m.session.Outcomes()),
	)
}

// currentStatus returns the selected column's status
func (m Model) currentStatus() models.Status {
	return models.Statuses()[m.selectedColumn]
}

// currentTasks returns the tasks of the selected column
func (m Model) currentTasks() []*models.Task {
	return m.session.Column(m.currentStatus())
}

// currentTask returns the selected task, or nil when the column is empty
func (m Model) currentTask() *models.Task {
	tasks := m.currentTasks()
	if m.selectedTask < 0 || m.selectedTask >= len(tasks) {
		return nil
	}
	return tasks[m.selectedTask]
}

// clampSelection keeps the task cursor inside the selected column
func (m *Model) clampSelection() {
	n := len(m.currentTasks())
	if m.selectedTask >= n {
		m.selectedTask = n - 1
	}
	if m.selectedTask < 0 {
		m.selectedTask = 0
	}
}

// followTask moves the cursor to wherever taskID now sits
func (m *Model) followTask(taskID int) {
	status, idx, ok := m.session.Store().Find(taskID)
	if !ok {
		m.clampSelection()
		return
	}
	m.selectedColumn = status.Index()
	m.selectedTask = idx
}

// notify shows a notification and schedules its removal
func (m *Model) notify(level Level, message string) tea.Cmd {
	m.nextNoteID++
	m.notification = &Notification{ID: m.nextNoteID, Level: level, Message: message}
	return clearNotificationAfter(m.nextNoteID)
}

// Notification returns the visible notification, or nil
func (m Model) Notification() *Notification {
	return m.notification
}

// Selection returns the selected column status and task index
func (m Model) Selection() (models.Status, int) {
	return m.currentStatus(), m.selectedTask
}
