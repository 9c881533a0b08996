// Package testutil starts the full tablero stack for command tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/server"
)

// TestToken is the bearer token the test server requires
const TestToken = "test-token"

// QuietLogger discards everything
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StartServer runs the API over an in-memory database and returns the
// application container and the server's base URL
func StartServer(t *testing.T) (*app.App, string) {
	t.Helper()

	a, err := app.Open(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	srv := server.New(server.Services{
		Tasks:    a.TaskService,
		Projects: a.ProjectService,
		Meetings: a.MeetingService,
	}, server.Options{Token: TestToken, Logger: QuietLogger()})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return a, ts.URL
}

// ClosedServerConfig returns a config pointing at a server that has
// already shut down, for connection failure tests
func ClosedServerConfig(t *testing.T) *config.Config {
	t.Helper()
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	cfg := config.Default()
	cfg.Client.ServerURL = url
	cfg.Client.Timeout = 2 * time.Second
	return cfg
}
