// Command tablerod runs the board API as a standalone service, configured
// from the config file and TABLERO_* environment variables.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
	"github.com/thenoetrevino/tablero/internal/server"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	logging.InitServer(os.Stderr, os.Getenv("TABLERO_LOG_LEVEL"), os.Getenv("TABLERO_JSON_LOGS") == "1")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("tablerod starting", "addr", cfg.Serve.Addr, "pid", os.Getpid())

	err = server.Run(ctx, server.RunOptions{
		Options: server.Options{
			Addr:   cfg.Serve.Addr,
			Token:  cfg.Serve.Token,
			Logger: logging.Logger,
		},
		DBPath: cfg.Serve.DBPath,
	})
	if err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("tablerod shut down gracefully")
}
