package meeting

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/cli"
)

// MeetingCmd returns the meeting parent command
func MeetingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Manage meetings",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// ListCmd returns the meeting list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the meetings of a project, newest first",
		RunE:  runList,
	}
	cmd.Flags().Int("project", 0, "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	projectID, _ := cmd.Flags().GetInt("project")

	if projectID <= 0 {
		return cli.UsageError(formatter, "project ID must be a positive integer", "Use 'tablero project list' to see available projects")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	meetings, err := cliInstance.Client.ListMeetings(ctx, projectID)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		ids := make([]int, len(meetings))
		for i, m := range meetings {
			ids[i] = m.ID
		}
		return formatter.IDs(ids)
	}
	if formatter.JSON {
		return formatter.JSONResult("meetings", meetings)
	}

	w := formatter.Writer()
	if len(meetings) == 0 {
		_, err := fmt.Fprintln(w, "No meetings found")
		return err
	}
	fmt.Fprintf(w, "Found %d meetings:\n\n", len(meetings))
	for _, m := range meetings {
		fmt.Fprintf(w, "  [%d] %s  %s  (%s)\n", m.ID, m.Date.Format(time.DateOnly), m.Title, m.Slug)
	}
	return nil
}

// CreateCmd returns the meeting create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meeting",
		Long: `Create a meeting in a project. A slug is generated from the title when
none is given.

Examples:
  tablero meeting create --project=1 --title="Sprint review" --date=2026-05-04
  tablero meeting create --project=1 --title="Retro" --date=2026-05-04T15:00:00Z --slug=retro-may
`,
		RunE: runCreate,
	}

	cmd.Flags().Int("project", 0, "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")
	cmd.Flags().String("title", "", "Meeting title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("date", "", "Meeting date, YYYY-MM-DD or RFC3339 (default: today)")
	cmd.Flags().String("description", "", "Meeting description")
	cmd.Flags().String("slug", "", "URL slug (generated when empty)")
	cli.AddOutputFlags(cmd)

	return cmd
}

// ParseDate accepts a calendar date or a full RFC3339 timestamp
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", raw)
	}
	return t, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	projectID, _ := cmd.Flags().GetInt("project")
	title, _ := cmd.Flags().GetString("title")
	dateFlag, _ := cmd.Flags().GetString("date")
	description, _ := cmd.Flags().GetString("description")
	slug, _ := cmd.Flags().GetString("slug")

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if dateFlag != "" {
		parsed, err := ParseDate(dateFlag)
		if err != nil {
			return cli.ValidationError(formatter, err.Error(), "Example: --date=2026-05-04")
		}
		date = parsed
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	meeting, err := cliInstance.Client.CreateMeeting(ctx, api.CreateMeetingRequest{
		ProjectID:   projectID,
		Title:       title,
		Date:        date,
		Description: description,
		Slug:        slug,
	})
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.Success(meeting)
	}
	if formatter.JSON {
		return formatter.JSONResult("meeting", meeting)
	}
	_, err = fmt.Fprintf(formatter.Writer(), "Created meeting %d: %s (%s)\n", meeting.ID, meeting.Title, meeting.Slug)
	return err
}

var errInvalidMeetingID = errors.New("meeting ID must be a positive integer")

// meetingIDFrom reads the meeting ID from the positional argument or --id
func meetingIDFrom(cmd *cobra.Command, args []string) (int, error) {
	var id int
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, errInvalidMeetingID
		}
		id = parsed
	} else {
		id, _ = cmd.Flags().GetInt("id")
	}
	if id <= 0 {
		return 0, errInvalidMeetingID
	}
	return id, nil
}

// UpdateCmd returns the meeting update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a meeting",
		Long: `Update a meeting. Only the flags you pass are changed.

Examples:
  tablero meeting update 4 --title="Sprint review (moved)" --date=2026-05-06
  tablero meeting update --id=4 --project=2 --slug=review-may
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().Int("id", 0, "Meeting ID (can also be provided as positional argument)")
	cmd.Flags().Int("project", 0, "Move the meeting to this project")
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("date", "", "New date, YYYY-MM-DD or RFC3339")
	cmd.Flags().String("description", "", "New description (empty clears it)")
	cmd.Flags().String("slug", "", "New slug; must be unused")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	meetingID, err := meetingIDFrom(cmd, args)
	if err != nil {
		return cli.UsageError(formatter, err.Error(), "Usage: tablero meeting update <id> [--title ...]")
	}

	var req api.UpdateMeetingRequest
	flags := cmd.Flags()
	if flags.Changed("project") {
		projectID, _ := flags.GetInt("project")
		req.ProjectID = &projectID
	}
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		req.Title = &title
	}
	if flags.Changed("date") {
		raw, _ := flags.GetString("date")
		date, err := ParseDate(raw)
		if err != nil {
			return cli.ValidationError(formatter, err.Error(), "Example: --date=2026-05-04")
		}
		req.Date = &date
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		req.Description = &description
	}
	if flags.Changed("slug") {
		slug, _ := flags.GetString("slug")
		req.Slug = &slug
	}
	if req == (api.UpdateMeetingRequest{}) {
		return cli.UsageError(formatter, "nothing to update",
			"Pass at least one of --project, --title, --date, --description, --slug")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	meeting, err := cliInstance.Client.UpdateMeeting(ctx, meetingID, req)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.Success(meeting)
	}
	if formatter.JSON {
		return formatter.JSONResult("meeting", meeting)
	}
	_, err = fmt.Fprintf(formatter.Writer(), "Updated meeting %d: %s (%s)\n", meeting.ID, meeting.Title, meeting.Slug)
	return err
}

// DeleteCmd returns the meeting delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a meeting",
		Long:  "Delete a meeting. Its tasks stay on the board without a meeting.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Meeting ID (can also be provided as positional argument)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	meetingID, err := meetingIDFrom(cmd, args)
	if err != nil {
		return cli.UsageError(formatter, err.Error(), "Usage: tablero meeting delete <id>")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if err := cliInstance.Client.DeleteMeeting(ctx, meetingID); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.IDs([]int{meetingID})
	}
	if formatter.JSON {
		return formatter.JSONResult("meeting_id", meetingID)
	}
	_, err = fmt.Fprintf(formatter.Writer(), "Deleted meeting %d\n", meetingID)
	return err
}
