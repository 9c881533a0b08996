package auth

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
)

// LoginCmd returns the login subcommand
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the bearer token used for API requests",
		Long: `Store a bearer token in ~/.tablero/auth_token. TABLERO_TOKEN, when set,
takes precedence over the stored token.

Examples:
  tablero login --token=s3cret
  echo s3cret | tablero login --token=-
`,
		RunE: runLogin,
	}

	cmd.Flags().String("token", "", "Bearer token (use - for stdin)")
	_ = cmd.MarkFlagRequired("token")
	cmd.Flags().Bool("verify", false, "Check the token against the server before saving")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	token, _ := cmd.Flags().GetString("token")
	verify, _ := cmd.Flags().GetBool("verify")

	if token == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return cli.Fail(formatter, err)
		}
		token = string(data)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return cli.UsageError(formatter, "token cannot be empty", "Usage: tablero login --token=<token>")
	}

	// Save first so the client's token source picks it up for verification
	previous, err := config.LoadToken()
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if err := config.SaveToken(token); err != nil {
		return cli.Fail(formatter, err)
	}

	if verify {
		cliInstance, err := cli.GetCLIFromContext(ctx)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		if _, err := cliInstance.Client.ListProjects(ctx); err != nil {
			restoreToken(previous)
			return cli.Fail(formatter, err)
		}
	}

	if formatter.JSON {
		return formatter.JSONResult("logged_in", true)
	}
	if formatter.Quiet {
		return nil
	}
	path, _ := config.TokenPath()
	_, err = fmt.Fprintf(formatter.Writer(), "Token saved to %s\n", path)
	return err
}

func restoreToken(previous string) {
	if previous == "" {
		_ = config.ClearToken()
		return
	}
	_ = config.SaveToken(previous)
}

// LogoutCmd returns the logout subcommand
func LogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored bearer token",
		RunE:  runLogout,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	if err := config.ClearToken(); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.JSON {
		return formatter.JSONResult("logged_in", false)
	}
	if formatter.Quiet {
		return nil
	}
	_, err := fmt.Fprintln(formatter.Writer(), "Logged out")
	return err
}
