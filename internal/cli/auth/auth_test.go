package auth

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func TestLoginLogout(t *testing.T) {
	testutil.Isolate(t)
	ctx := context.Background()

	res := testutil.ExecuteCommand(t, ctx, LoginCmd(), "--token", "abc123")
	if res.Err != nil {
		t.Fatalf("login failed: %v", res.Err)
	}
	if !strings.Contains(res.Stdout, "Token saved") {
		t.Errorf("Unexpected output: %q", res.Stdout)
	}
	if got := config.ClientToken(); got != "abc123" {
		t.Errorf("ClientToken() = %q, want abc123", got)
	}

	res = testutil.ExecuteCommand(t, ctx, LogoutCmd())
	if res.Err != nil {
		t.Fatalf("logout failed: %v", res.Err)
	}
	path, _ := config.TokenPath()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("token file should be removed, stat err = %v", err)
	}
}

func TestLoginFromStdin(t *testing.T) {
	testutil.Isolate(t)

	res := testutil.ExecuteCommandWithInput(t, context.Background(), LoginCmd(), "piped-token\n", "--token", "-", "--quiet")
	if res.Err != nil {
		t.Fatalf("login failed: %v", res.Err)
	}
	if res.Stdout != "" {
		t.Errorf("quiet login should print nothing, got %q", res.Stdout)
	}
	if got := config.ClientToken(); got != "piped-token" {
		t.Errorf("ClientToken() = %q, want piped-token", got)
	}
}

func TestLoginEmptyToken(t *testing.T) {
	testutil.Isolate(t)

	res := testutil.ExecuteCommandWithInput(t, context.Background(), LoginCmd(), "  \n", "--token", "-")
	if cli.ExitCode(res.Err) != cli.ExitUsage {
		t.Errorf("exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitUsage)
	}
}

func TestLoginVerify(t *testing.T) {
	ctx := testutil.SetupCLITest(t)
	// The stored token is what the client sends once the env is cleared
	t.Setenv("TABLERO_TOKEN", "")

	res := testutil.ExecuteCommand(t, ctx, LoginCmd(), "--token", "wrong", "--verify", "--json")
	if cli.ExitCode(res.Err) != cli.ExitUnauthorized {
		t.Fatalf("exit = %d, want %d", cli.ExitCode(res.Err), cli.ExitUnauthorized)
	}
	if got := config.ClientToken(); got != "" {
		t.Errorf("rejected token must not be kept, got %q", got)
	}

	res = testutil.ExecuteCommand(t, ctx, LoginCmd(), "--token", testutil.TestToken, "--verify")
	if res.Err != nil {
		t.Fatalf("login failed: %v (%s)", res.Err, res.Stderr)
	}
	if got := config.ClientToken(); got != testutil.TestToken {
		t.Errorf("ClientToken() = %q, want %q", got, testutil.TestToken)
	}
}
