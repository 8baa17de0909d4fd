package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/duckassist/duckassist/internal/cli/duckassist"
	"github.com/duckassist/duckassist/internal/config"
)

func main() {
	cfg, err := config.LoadFromEnv("duckassist")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(duckassist.Run(ctx, os.Args[1:], duckassist.Options{
		DBPath: cfg.Database.Path,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
