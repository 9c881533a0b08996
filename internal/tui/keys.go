package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/tablero/internal/config"
)

// keyMap is the board's key bindings, built from the configured mappings
type keyMap struct {
	PrevColumn    key.Binding
	NextColumn    key.Binding
	PrevTask      key.Binding
	NextTask      key.Binding
	MoveTaskLeft  key.Binding
	MoveTaskRight key.Binding
	MoveTaskUp    key.Binding
	MoveTaskDown  key.Binding
	PrevProject   key.Binding
	NextProject   key.Binding
	Refresh       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		PrevColumn: key.NewBinding(
			key.WithKeys(km.PrevColumn, "left"),
			key.WithHelp(km.PrevColumn+"/←", "prev column"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys(km.NextColumn, "right"),
			key.WithHelp(km.NextColumn+"/→", "next column"),
		),
		PrevTask: key.NewBinding(
			key.WithKeys(km.PrevTask, "up"),
			key.WithHelp(km.PrevTask+"/↑", "prev task"),
		),
		NextTask: key.NewBinding(
			key.WithKeys(km.NextTask, "down"),
			key.WithHelp(km.NextTask+"/↓", "next task"),
		),
		MoveTaskLeft: key.NewBinding(
			key.WithKeys(km.MoveTaskLeft),
			key.WithHelp(km.MoveTaskLeft, "move to prev column"),
		),
		MoveTaskRight: key.NewBinding(
			key.WithKeys(km.MoveTaskRight),
			key.WithHelp(km.MoveTaskRight, "move to next column"),
		),
		MoveTaskUp: key.NewBinding(
			key.WithKeys(km.MoveTaskUp),
			key.WithHelp(km.MoveTaskUp, "move up"),
		),
		MoveTaskDown: key.NewBinding(
			key.WithKeys(km.MoveTaskDown),
			key.WithHelp(km.MoveTaskDown, "move down"),
		),
		PrevProject: key.NewBinding(
			key.WithKeys(km.PrevProject),
			key.WithHelp(km.PrevProject, "prev project"),
		),
		NextProject: key.NewBinding(
			key.WithKeys(km.NextProject),
			key.WithHelp(km.NextProject, "next project"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(km.Refresh),
			key.WithHelp(km.Refresh, "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys(km.ShowHelp),
			key.WithHelp(km.ShowHelp, "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// ShortHelp satisfies help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveTaskLeft, k.MoveTaskRight, k.Refresh, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevTask, k.NextTask},
		{k.MoveTaskLeft, k.MoveTaskRight, k.MoveTaskUp, k.MoveTaskDown},
		{k.PrevProject, k.NextProject, k.Refresh, k.Help, k.Quit},
	}
}
