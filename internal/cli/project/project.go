package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/cli"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())

	return cmd
}

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	projects, err := cliInstance.Client.ListProjects(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		ids := make([]int, len(projects))
		for i, p := range projects {
			ids[i] = p.ID
		}
		return formatter.IDs(ids)
	}
	if formatter.JSON {
		return formatter.JSONResult("projects", projects)
	}

	w := formatter.Writer()
	if len(projects) == 0 {
		_, err := fmt.Fprintln(w, "No projects found")
		return err
	}
	fmt.Fprintf(w, "Found %d projects:\n\n", len(projects))
	for _, p := range projects {
		fmt.Fprintf(w, "  [%d] %s", p.ID, p.Title)
		if p.Description != "" {
			fmt.Fprintf(w, " - %s", p.Description)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project.

Examples:
  tablero project create --title="Platform"
  PROJECT_ID=$(tablero project create --title="Platform" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Project title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("description", "", "Project description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	project, err := cliInstance.Client.CreateProject(ctx, api.CreateProjectRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return formatter.Success(project)
	}
	if formatter.JSON {
		return formatter.JSONResult("project", project)
	}
	_, err = fmt.Fprintf(formatter.Writer(), "Created project %d: %s\n", project.ID, project.Title)
	return err
}
