package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/models"
)

// CardWidth is the width of task cards and markdown wrapping
const CardWidth = 80

// Styles are the CLI text styles derived from the theme
type Styles struct {
	Card    lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	Section lipgloss.Style
}

// NewStyles builds the CLI styles for a theme
func NewStyles(theme config.Theme) Styles {
	theme.ApplyDefaults()
	return Styles{
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Accent)).
			Padding(1, 2).
			Width(CardWidth),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent)),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal)),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Accent)).MarginTop(1),
	}
}

// Cache glamour renderers by width; building one parses the style sheet
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown renders a task description, falling back to the raw text
func RenderMarkdown(text string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(rendered)
}

// RenderTask writes a task card with its markdown description
func RenderTask(w io.Writer, task *models.Task, st Styles) error {
	var content strings.Builder

	content.WriteString(st.Title.Render(fmt.Sprintf("#%d: %s", task.ID, task.Title)))
	content.WriteString("\n\n")

	meta := fmt.Sprintf("%s %s  %s %d",
		st.Label.Render("Status:"), st.Value.Render(task.Status.Label()),
		st.Label.Render("Serial:"), task.Serial)
	if task.ProjectID != nil {
		meta += fmt.Sprintf("  %s %d", st.Label.Render("Project:"), *task.ProjectID)
	}
	if task.MeetingID != nil {
		meta += fmt.Sprintf("  %s %d", st.Label.Render("Meeting:"), *task.MeetingID)
	}
	content.WriteString(meta)
	content.WriteString("\n")

	content.WriteString(st.Section.Render("Description"))
	content.WriteString("\n")
	if task.Description == "" {
		content.WriteString(st.Subtle.Italic(true).Render("No description"))
	} else {
		content.WriteString(RenderMarkdown(task.Description, CardWidth-6))
	}

	if !task.CreatedAt.IsZero() {
		content.WriteString("\n\n")
		content.WriteString(st.Subtle.Render(fmt.Sprintf("Created %s  Updated %s",
			task.CreatedAt.Local().Format("2006-01-02 15:04"),
			task.UpdatedAt.Local().Format("2006-01-02 15:04"))))
	}

	_, err := fmt.Fprintln(w, st.Card.Render(content.String()))
	return err
}

// RenderBoard writes every column in board order with its tasks
func RenderBoard(w io.Writer, b map[models.Status][]*models.Task, st Styles) error {
	for _, status := range models.Statuses() {
		tasks := b[status]
		if _, err := fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))); err != nil {
			return err
		}
		if len(tasks) == 0 {
			if _, err := fmt.Fprintln(w, "  "+st.Subtle.Render("No tasks")); err != nil {
				return err
			}
		}
		for _, task := range tasks {
			if _, err := fmt.Fprintf(w, "  %3d. [%d] %s\n", task.Serial, task.ID, task.Title); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
