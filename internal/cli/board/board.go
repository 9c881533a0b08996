package board

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// BoardCmd returns the board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the kanban board",
		Long: `Fetch the board and print every column in order.

Examples:
  tablero board --project=1
  tablero board --project=1 --meeting=4 --json
`,
		RunE: runBoard,
	}

	cmd.Flags().Int("project", 0, "Project ID (default: all tasks)")
	cmd.Flags().Int("meeting", 0, "Meeting ID")
	cmd.Flags().Bool("check", false, "Report serial gaps and duplicates in each column")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	projectID, _ := cmd.Flags().GetInt("project")
	meetingID, _ := cmd.Flags().GetInt("meeting")
	check, _ := cmd.Flags().GetBool("check")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	session := cliInstance.NewSession()
	defer func() { _ = session.Close() }()

	session.SetFilters(projectID, meetingID)
	if err := session.Refresh(ctx); err != nil {
		return cli.Fail(formatter, err)
	}
	snapshot := session.Store().Snapshot()

	if formatter.Quiet {
		var ids []int
		for _, status := range models.Statuses() {
			for _, task := range snapshot[status] {
				ids = append(ids, task.ID)
			}
		}
		return formatter.IDs(ids)
	}
	if formatter.JSON {
		return formatter.JSONResult("board", snapshot)
	}

	w := formatter.Writer()
	if err := cli.RenderBoard(w, snapshot, cli.NewStyles(cliInstance.Config.Theme)); err != nil {
		return err
	}
	if check {
		issues := snapshot.SerialIssues()
		if len(issues) == 0 {
			_, err := fmt.Fprintln(w, "Serials are contiguous")
			return err
		}
		for _, issue := range issues {
			fmt.Fprintf(w, "%s: task %d has serial %d, expected %d\n",
				issue.Status.Label(), issue.TaskID, issue.Serial, issue.Index+1)
		}
	}
	return nil
}
