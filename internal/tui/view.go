package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/models"
)

const (
	minColumnWidth = 16
	// columnChrome is the border and padding width around column content
	columnChrome = 4
	// chromeLines is the header, status bar and help line
	chromeLines = 4
)

// View renders the current state of the application
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	view.Content = lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBoard(),
		m.renderStatusBar(),
		m.help.View(m.keys),
	)
	return view
}

// renderHeader shows the project, meeting filter and any notification
func (m Model) renderHeader() string {
	title := "tablero"
	if project := m.session.SelectedProject(); project != nil {
		title += " · " + project.Title
	}
	if meetingID := m.session.Filter().MeetingID; meetingID > 0 {
		for _, meeting := range m.session.Meetings() {
			if meeting.ID == meetingID {
				title += " · " + meeting.Title
				break
			}
		}
	}
	header := m.styles.title.Render(title)

	if m.notification != nil {
		style := m.styles.info
		if m.notification.Level == LevelError {
			style = m.styles.error
		}
		header += "  " + style.Render(m.notification.Message)
	}
	return header
}

// renderBoard lays the five status columns out side by side
func (m Model) renderBoard() string {
	statuses := models.Statuses()
	columnWidth := max(m.width/len(statuses)-columnChrome, minColumnWidth)
	height := max(m.height-chromeLines, 5)

	rendered := make([]string, len(statuses))
	for i, status := range statuses {
		selected := i == m.selectedColumn
		selectedIdx := -1
		if selected {
			selectedIdx = m.selectedTask
		}
		rendered[i] = m.renderColumn(status, m.session.Column(status), selectedIdx, columnWidth, height, selected)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderColumn renders one column, scrolled so the selected task is visible
func (m Model) renderColumn(status models.Status, tasks []*models.Task, selectedIdx, width, height int, selected bool) string {
	header := m.styles.headers[status].Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))
	lines := []string{header, ""}

	// Borders, header, spacer and the overflow indicator
	visible := max(height-5, 1)
	offset := 0
	if selectedIdx >= visible {
		offset = selectedIdx - visible + 1
	}

	if len(tasks) == 0 {
		lines = append(lines, m.styles.subtle.Italic(true).Render("No tasks"))
	}
	end := min(offset+visible, len(tasks))
	for i := offset; i < end; i++ {
		style := m.styles.task
		prefix := "  "
		if i == selectedIdx {
			style = m.styles.selectedTask
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d. %s", prefix, tasks[i].Serial, tasks[i].Title)
		lines = append(lines, style.Inline(true).MaxWidth(width).Render(line))
	}
	if end < len(tasks) {
		lines = append(lines, m.styles.subtle.Render(fmt.Sprintf("▼ %d more", len(tasks)-end)))
	}

	style := m.styles.column
	if selected {
		style = m.styles.selectedColumn
	}
	// Width covers padding, Height the content area inside the borders
	return style.Width(width + 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

// renderStatusBar shows sync state on the left and the help hint on the right
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case !m.loaded || m.session.Loading():
		left = m.styles.subtle.Render("loading…")
	case m.session.Err() != nil:
		left = m.styles.error.Render("sync error: " + api.Message(m.session.Err()) + " (press r to reload)")
	case m.session.InFlight() > 0:
		left = m.styles.subtle.Render(fmt.Sprintf("saving %d change(s)…", m.session.InFlight()))
	default:
		left = m.styles.subtle.Render(fmt.Sprintf("%d tasks", m.session.Store().TotalTaskCount()))
	}
	right := m.styles.subtle.Render("press ? for help")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}
