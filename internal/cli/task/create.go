package task

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a task at the bottom of its column.

Examples:
  # Simple task
  tablero task create --title="Book room" --project=1

  # Quiet mode for bash capture
  TASK_ID=$(tablero task create --title="Book room" --project=1 --quiet)

  # Attach to a meeting; the meeting's project is used
  tablero task create --title="Send notes" --meeting=4 --status=in_progress

  # Description from stdin (markdown)
  cat notes.md | tablero task create --title="Notes" --project=1 --description=-
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required)")
	_ = cmd.MarkFlagRequired("title")

	cmd.Flags().String("description", "", "Task description in markdown (use - for stdin)")
	cmd.Flags().String("status", string(models.StatusPending), "Column: pending, in_progress, completed, failed, hold")
	cmd.Flags().Int("project", 0, "Project ID")
	cmd.Flags().Int("meeting", 0, "Meeting ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	statusFlag, _ := cmd.Flags().GetString("status")
	projectID, _ := cmd.Flags().GetInt("project")
	meetingID, _ := cmd.Flags().GetInt("meeting")

	status, err := models.ParseStatus(statusFlag)
	if err != nil {
		return cli.ValidationError(formatter, err.Error(),
			"Valid statuses are: pending, in_progress, completed, failed, hold")
	}

	// Handle description from stdin
	if description == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.Fail(formatter, err)
		}
		description = strings.TrimSpace(string(data))
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	req := api.CreateTaskRequest{
		Title:       title,
		Description: description,
		TaskStatus:  status,
	}
	if projectID > 0 {
		req.ProjectID = &projectID
	}
	if meetingID > 0 {
		req.MeetingID = &meetingID
	}

	task, err := cliInstance.Client.CreateTask(ctx, req)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.Success(task)
	}
	if formatter.JSON {
		return formatter.JSONResult("task", task)
	}
	return printTaskLine(formatter, "Created", task)
}
