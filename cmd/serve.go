package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API",
		Long: `Serve the board API over HTTP, backed by a local SQLite database.

Flags override the config file and TABLERO_* environment variables.

Examples:
  tablero serve
  tablero serve --addr :9000 --db ./board.db --token s3cret`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	cmd.Flags().String("db", "", "SQLite database path (default ~/.tablero/tablero.db)")
	cmd.Flags().String("token", "", "bearer token clients must send")
	cmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().Bool("json-logs", false, "log as JSON")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	logging.InitServer(cmd.ErrOrStderr(), level, jsonLogs)

	opts := server.RunOptions{
		Options: server.Options{
			Addr:   cfg.Serve.Addr,
			Token:  cfg.Serve.Token,
			Logger: logging.Logger,
		},
		DBPath: cfg.Serve.DBPath,
	}
	if cmd.Flags().Changed("addr") {
		opts.Addr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("db") {
		opts.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("token") {
		opts.Token, _ = cmd.Flags().GetString("token")
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.Run(ctx, opts)
}
