package task

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display a task with its markdown description rendered for the terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Task ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, err := taskIDFrom(cmd, args)
	if err != nil {
		return cli.UsageError(formatter, err.Error(), "Usage: tablero task show <id> or tablero task show --id=<id>")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	task, err := cliInstance.Client.GetTask(ctx, taskID)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.Success(task)
	}
	if formatter.JSON {
		return formatter.JSONResult("task", task)
	}
	return cli.RenderTask(formatter.Writer(), task, cli.NewStyles(cliInstance.Config.Theme))
}

// taskIDFrom reads the task ID from the positional argument or --id
func taskIDFrom(cmd *cobra.Command, args []string) (int, error) {
	var taskID int
	if len(args) > 0 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, errInvalidTaskID
		}
		taskID = id
	} else {
		taskID, _ = cmd.Flags().GetInt("id")
	}
	if taskID <= 0 {
		return 0, errInvalidTaskID
	}
	return taskID, nil
}
