package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

// styles are the board styles derived from the configured theme
type styles struct {
	column         lipgloss.Style
	selectedColumn lipgloss.Style
	task           lipgloss.Style
	selectedTask   lipgloss.Style
	title          lipgloss.Style
	subtle         lipgloss.Style
	info           lipgloss.Style
	error          lipgloss.Style
	headers        map[models.Status]lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	theme.ApplyDefaults()

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(0, 1)

	headerColors := map[models.Status]string{
		models.StatusPending:    theme.Pending,
		models.StatusInProgress: theme.InProgress,
		models.StatusCompleted:  theme.Completed,
		models.StatusFailed:     theme.Failed,
		models.StatusHold:       theme.Hold,
	}
	headers := make(map[models.Status]lipgloss.Style, len(headerColors))
	for status, color := range headerColors {
		headers[status] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
	}

	return styles{
		column:         column,
		selectedColumn: column.BorderForeground(lipgloss.Color(theme.SelectedBorder)),
		task:           lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal)),
		selectedTask: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Accent)),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)),
		subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.InfoFg)),
		error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ErrorFg)),
		headers: headers,
	}
}
