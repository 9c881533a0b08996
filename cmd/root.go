// Package cmd assembles the tablero command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli/auth"
	"github.com/thenoetrevino/tablero/internal/cli/board"
	"github.com/thenoetrevino/tablero/internal/cli/meeting"
	"github.com/thenoetrevino/tablero/internal/cli/project"
	"github.com/thenoetrevino/tablero/internal/cli/task"
)

// NewRootCmd builds a fresh command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablero",
		Short: "Tablero - a kanban board for meeting tasks",
		Long: `Tablero is a kanban board for the tasks that come out of meetings.

Run "tablero serve" to host a board, then use the other commands or
"tablero tui" against it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		task.TaskCmd(),
		task.MoveCmd(),
		project.ProjectCmd(),
		meeting.MeetingCmd(),
		board.BoardCmd(),
		auth.LoginCmd(),
		auth.LogoutCmd(),
		ServeCmd(),
		TuiCmd(),
	)
	return rootCmd
}

// Execute runs the command tree with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
