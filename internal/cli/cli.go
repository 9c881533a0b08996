// Package cli holds the shared plumbing of the tablero commands: the
// client container, output formatting and exit codes.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tablero/internal/api"
	"github.com/thenoetrevino/tablero/internal/boardsync"
	"github.com/thenoetrevino/tablero/internal/config"
)

// CLI represents the CLI application context
type CLI struct {
	Client *api.Client
	Config *config.Config
}

// NewCLI loads the config and builds an API client for the configured server
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewCLIWithConfig(cfg)
}

// NewCLIWithConfig builds a CLI from an already loaded config
func NewCLIWithConfig(cfg *config.Config) (*CLI, error) {
	client, err := api.NewClient(cfg.Client.ServerURL,
		api.WithTimeout(cfg.Client.Timeout),
		api.WithTokenSource(config.ClientToken),
		api.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, err
	}
	return &CLI{Client: client, Config: cfg}, nil
}

// NewSession creates a board session honoring the board config
func (c *CLI) NewSession() *boardsync.Session {
	return boardsync.NewSession(c.Client,
		boardsync.WithRenumber(c.Config.Board.Renumber),
		boardsync.WithRefetchOnFailure(c.Config.Board.RefetchOnFailure),
		boardsync.WithLogger(slog.Default()),
	)
}

type cliKey struct{}

// WithCLI stores a CLI instance in ctx; commands run under ctx use it
// instead of building their own
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// GetCLIFromContext returns the CLI injected with WithCLI, or a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if c, ok := ctx.Value(cliKey{}).(*CLI); ok && c != nil {
		return c, nil
	}
	return NewCLI(ctx)
}
