// Package main is the entry point for the taskai CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"taskai/internal/backend/openaiassist"
	"taskai/internal/backend/resttasks"
	"taskai/internal/cli"
	"taskai/internal/commands"
	"taskai/internal/config"
	"taskai/internal/service"
	"taskai/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (*commands.App, error) {
		level := slog.LevelWarn
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		// Route changes are meaningless in a terminal; log them so
		// --debug shows when a 401 or logout would have redirected.
		nav := session.NavigatorFunc(func(route string) {
			logger.Debug("navigate", "route", route)
		})

		store := session.NewFileStore(cfg.TokenPath())
		mgr := session.NewManager(cfg.AuthURL, store, nav, logger)

		backend := resttasks.New(cfg, mgr.Client())

		var assistant service.Assistant
		switch {
		case cfg.OpenAIKey != "":
			assistant = openaiassist.New(cfg.OpenAIKey, cfg.OpenAIModel)
		case cfg.AIURL != "":
			assistant = backend
		}

		return &commands.App{
			Session:   mgr,
			Service:   backend,
			Assistant: assistant,
		}, nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
