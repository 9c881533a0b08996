package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/app"
)

// RunOptions configures Run
type RunOptions struct {
	Options

	// DBPath is the SQLite file; empty uses the default location
	DBPath string
}

// Run opens the database, serves the API until ctx is cancelled and
// closes the database on the way out
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
		opts.Logger = logger
	}

	a, err := app.Open(ctx, opts.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Error("failed to close database", "error", closeErr)
		}
	}()

	if opts.Token == "" {
		logger.Warn("no token configured, API is unauthenticated")
	}

	srv := New(Services{
		Tasks:    a.TaskService,
		Projects: a.ProjectService,
		Meetings: a.MeetingService,
	}, opts.Options)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("serve %s: %w", opts.Addr, err)
	}
	return nil
}
