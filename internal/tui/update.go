package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/boardsync"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case boardLoadedMsg:
		m.loaded = true
		m.clampSelection()
		if msg.err != nil {
			return m, m.notify(LevelError, "Failed to load board: "+api.Message(msg.err))
		}
		return m, nil

	case outcomeMsg:
		cmd := m.handleOutcome(msg.outcome)
		return m, tea.Batch(cmd, waitForOutcome(m.session.Outcomes()))

	case outcomesClosedMsg:
		return m, nil

	case clearNotificationMsg:
		if m.notification != nil && m.notification.ID == msg.id {
			m.notification = nil
		}
		return m, nil
	}

	return m, nil
}

// handleOutcome surfaces failed moves. Confirmed and superseded moves need
// no feedback since the board already shows them.
func (m *Model) handleOutcome(o boardsync.Outcome) tea.Cmd {
	if o.Kind != boardsync.OutcomeFailed {
		return nil
	}
	m.clampSelection()

	text := fmt.Sprintf("Move of task #%d failed: %s", o.TaskID, api.Message(o.Err))
	if o.RolledBack {
		text += " (reverted)"
	}
	return m.notify(LevelError, text)
}

// handleKey handles input in normal mode
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.session.ClearError()
		return m, loadBoard(m.ctx, m.session, false)

	case key.Matches(msg, m.keys.PrevColumn):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.clampSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextColumn):
		if m.selectedColumn < len(models.Statuses())-1 {
			m.selectedColumn++
			m.clampSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevTask):
		if m.selectedTask > 0 {
			m.selectedTask--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTask):
		if m.selectedTask < len(m.currentTasks())-1 {
			m.selectedTask++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveTaskLeft):
		return m, m.moveAcross(-1)

	case key.Matches(msg, m.keys.MoveTaskRight):
		return m, m.moveAcross(1)

	case key.Matches(msg, m.keys.MoveTaskUp):
		return m, m.moveWithin(-1)

	case key.Matches(msg, m.keys.MoveTaskDown):
		return m, m.moveWithin(1)

	case key.Matches(msg, m.keys.PrevProject):
		return m, m.switchProject(-1)

	case key.Matches(msg, m.keys.NextProject):
		return m, m.switchProject(1)
	}

	return m, nil
}

// moveAcross appends the selected task to the neighbouring column
func (m *Model) moveAcross(delta int) tea.Cmd {
	task := m.currentTask()
	if task == nil {
		return nil
	}
	statuses := models.Statuses()
	target := m.selectedColumn + delta
	if target < 0 || target >= len(statuses) {
		return nil
	}

	from := m.currentStatus()
	to := statuses[target]
	if !m.session.Move(task.ID, from, to, len(m.session.Column(to))) {
		m.clampSelection()
		return nil
	}
	m.followTask(task.ID)
	return nil
}

// moveWithin shifts the selected task one slot inside its column
func (m *Model) moveWithin(delta int) tea.Cmd {
	task := m.currentTask()
	if task == nil {
		return nil
	}
	target := m.selectedTask + delta
	if target < 0 || target >= len(m.currentTasks()) {
		return nil
	}

	status := m.currentStatus()
	if !m.session.Move(task.ID, status, status, target) {
		m.clampSelection()
		return nil
	}
	m.followTask(task.ID)
	return nil
}

// switchProject cycles the project filter and reloads the board
func (m *Model) switchProject(delta int) tea.Cmd {
	projects := m.session.Projects()
	if len(projects) < 2 {
		return nil
	}

	current := 0
	if selected := m.session.SelectedProject(); selected != nil {
		for i, p := range projects {
			if p.ID == selected.ID {
				current = i
				break
			}
		}
	}
	next := (current + delta + len(projects)) % len(projects)

	m.session.SetFilters(projects[next].ID, 0)
	m.selectedColumn = 0
	m.selectedTask = 0
	return loadBoard(m.ctx, m.session, false)
}
