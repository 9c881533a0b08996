package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/boardsync"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// MoveCmd returns the move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to another column or position",
		Long: `Move a task through a board session, exactly as the board UI does:
the move is computed against the current board, sent to the server and the
command waits for the server's answer.

Examples:
  # Append to the in progress column
  tablero move --id=12 --to=in_progress

  # Move to the top of its current column
  tablero move --id=12 --to=pending --index=0
`,
		RunE: runMove,
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().String("to", "", "Target column: pending, in_progress, completed, failed, hold (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().Int("index", -1, "Zero-based position in the target column (default: bottom)")
	cli.AddOutputFlags(cmd)

	return cmd
}

// moveResult is the JSON shape of a finished move
type moveResult struct {
	TaskID int           `json:"task_id"`
	Status models.Status `json:"task_status"`
	Serial int           `json:"serial"`
	Moved  bool          `json:"moved"`
}

func (r moveResult) GetID() int {
	return r.TaskID
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	taskID, _ := cmd.Flags().GetInt("id")
	toFlag, _ := cmd.Flags().GetString("to")
	index, _ := cmd.Flags().GetInt("index")

	if taskID <= 0 {
		return cli.UsageError(formatter, errInvalidTaskID.Error(), "Usage: tablero move --id=<id> --to=<status>")
	}
	to, err := models.ParseStatus(toFlag)
	if err != nil {
		return cli.ValidationError(formatter, err.Error(),
			"Valid statuses are: pending, in_progress, completed, failed, hold")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	// Scope the board to the task's project so indexes match the server's
	task, err := cliInstance.Client.GetTask(ctx, taskID)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	session := cliInstance.NewSession()
	defer func() { _ = session.Close() }()

	projectID := 0
	if task.ProjectID != nil {
		projectID = *task.ProjectID
	}
	session.SetFilters(projectID, 0)
	if err := session.Refresh(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	from, _, ok := session.Store().Find(taskID)
	if !ok {
		return cli.Fail(formatter, &api.Error{Kind: api.KindNotFound, Message: fmt.Sprintf("task %d is not on the board", taskID)})
	}
	if index < 0 {
		index = len(session.Column(to))
	}

	if !session.Move(taskID, from, to, index) {
		return cli.Fail(formatter, fmt.Errorf("task %d could not be moved", taskID))
	}
	session.Wait()

	result := moveResult{TaskID: taskID}
	select {
	case outcome := <-session.Outcomes():
		if outcome.Kind == boardsync.OutcomeFailed {
			return cli.Fail(formatter, outcome.Err)
		}
		result.Status = outcome.Status
		result.Serial = outcome.Serial
		result.Moved = true
	default:
		// The task was already there; no request was sent
		result.Status = from
		if _, idx, ok := session.Store().Find(taskID); ok {
			result.Serial = session.Column(from)[idx].Serial
		}
	}

	if formatter.Quiet {
		return formatter.Success(result)
	}
	if formatter.JSON {
		return formatter.JSONResult("move", result)
	}
	if !result.Moved {
		_, err = fmt.Fprintf(formatter.Writer(), "Task %d is already at %s #%d\n", taskID, result.Status.Label(), result.Serial)
		return err
	}
	_, err = fmt.Fprintf(formatter.Writer(), "Moved task %d to %s #%d\n", taskID, result.Status.Label(), result.Serial)
	return err
}
