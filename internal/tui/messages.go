package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tablero/internal/boardsync"
)

// notificationTTL is how long an inline notification stays visible
const notificationTTL = 4 * time.Second

// boardLoadedMsg reports the end of a full board fetch
type boardLoadedMsg struct {
	err error
}

// outcomeMsg carries one resolved move request
type outcomeMsg struct {
	outcome boardsync.Outcome
}

// outcomesClosedMsg means the session was closed
type outcomesClosedMsg struct{}

// clearNotificationMsg hides notification id if it is still showing
type clearNotificationMsg struct {
	id int
}

// loadBoard fetches the project list and the board. Without an initial
// project the first project is selected.
func loadBoard(ctx context.Context, s *boardsync.Session, initial bool) tea.Cmd {
	return func() tea.Msg {
		if initial {
			if _, err := s.LoadProjects(ctx); err != nil {
				return boardLoadedMsg{err: err}
			}
			if s.Filter().ProjectID == 0 {
				return boardLoadedMsg{err: s.ResetFilters(ctx)}
			}
		}
		return boardLoadedMsg{err: s.Refresh(ctx)}
	}
}

// waitForOutcome blocks on the session's outcome channel
func waitForOutcome(ch <-chan boardsync.Outcome) tea.Cmd {
	return func() tea.Msg {
		o, ok := <-ch
		if !ok {
			return outcomesClosedMsg{}
		}
		return outcomeMsg{outcome: o}
	}
}

func clearNotificationAfter(id int) tea.Cmd {
	return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id}
	})
}
