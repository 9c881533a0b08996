package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
)

// Isolate points HOME and the config dir at a temp dir and clears the
// TABLERO_* environment so the user's real token and config are never read
func Isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{"TABLERO_SERVER_URL", "TABLERO_TOKEN", "TABLERO_DB_PATH", "TABLERO_ADDR", "TABLERO_THEME_FILE"} {
		t.Setenv(key, "")
	}
	return home
}

// SetupCLITest starts a server and returns a context carrying a CLI
// instance pointed at it and authenticated with TestToken
func SetupCLITest(t *testing.T) context.Context {
	t.Helper()
	Isolate(t)
	_, url := StartServer(t)
	t.Setenv("TABLERO_TOKEN", TestToken)

	cfg := config.Default()
	cfg.Client.ServerURL = url
	c, err := cli.NewCLIWithConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to create CLI: %v", err)
	}
	return cli.WithCLI(context.Background(), c)
}

// Result is the captured output of one command run
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ExecuteCommand runs cmd with args under ctx and captures its output
func ExecuteCommand(t *testing.T, ctx context.Context, cmd *cobra.Command, args ...string) Result {
	t.Helper()
	return ExecuteCommandWithInput(t, ctx, cmd, "", args...)
}

// ExecuteCommandWithInput is ExecuteCommand with stdin set to input
func ExecuteCommandWithInput(t *testing.T, ctx context.Context, cmd *cobra.Command, input string, args ...string) Result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}
