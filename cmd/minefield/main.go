package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var configPath string

func init() {
	const usage = "YAML config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	logger := config.NewLogger(os.Stderr)
	mines.Log = logger

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.FromEnv(configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	s, err := session.New(cfg, logger)
	if err != nil {
		logger.Error("failed to start session", slog.Any("error", err))
		os.Exit(1)
	}

	g := newGame(s, os.Stdout, logger)
	if err := g.preload(ctx); err != nil {
		logger.Error("failed to preload view", slog.Any("error", err))
		os.Exit(1)
	}

	if err := g.run(ctx, os.Stdin); err != nil {
		logger.Info("exit reason", slog.Any("error", err))
	}
}
