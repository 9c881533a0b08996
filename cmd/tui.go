package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// TuiCmd returns the interactive board command
func TuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Long: `Open the interactive board against the configured server.

Examples:
  tablero tui
  tablero tui --project 2 --meeting 5`,
		RunE: runTui,
	}

	cmd.Flags().Int("project", 0, "project to open (default: first project)")
	cmd.Flags().Int("meeting", 0, "meeting to filter by")

	return cmd
}

func runTui(cmd *cobra.Command, args []string) error {
	closer, err := logging.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctx := cmd.Context()
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}

	session := cliInstance.NewSession()
	defer func() { _ = session.Close() }()

	projectID, _ := cmd.Flags().GetInt("project")
	meetingID, _ := cmd.Flags().GetInt("meeting")
	if projectID > 0 || meetingID > 0 {
		session.SetFilters(projectID, meetingID)
	}

	program := tea.NewProgram(tui.New(ctx, session, cliInstance.Config), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("board exited: %w", err)
	}
	return nil
}
