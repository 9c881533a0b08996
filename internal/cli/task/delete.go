package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

var errInvalidTaskID = errors.New("task ID must be a positive integer")

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Long:  "Delete a task. The remaining tasks of its column close the gap.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Task ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, err := taskIDFrom(cmd, args)
	if err != nil {
		return cli.UsageError(formatter, err.Error(), "Usage: tablero task delete <id>")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if err := cliInstance.Client.DeleteTask(ctx, taskID); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.IDs([]int{taskID})
	}
	if formatter.JSON {
		return formatter.JSONResult("task_id", taskID)
	}
	_, err = fmt.Fprintf(formatter.Writer(), "Deleted task %d\n", taskID)
	return err
}

// printTaskLine prints a one-line summary of a task
func printTaskLine(formatter *cli.OutputFormatter, verb string, task *models.Task) error {
	_, err := fmt.Fprintf(formatter.Writer(), "%s task %d: %s [%s #%d]\n",
		verb, task.ID, task.Title, task.Status.Label(), task.Serial)
	return err
}
