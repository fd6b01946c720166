package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/utafrali/EcommerceGo/seeder/internal/app"
	"github.com/utafrali/EcommerceGo/seeder/internal/config"
	"github.com/utafrali/EcommerceGo/seeder/pkg/logger"
)

func main() {
	action := flag.String("action", app.ActionSeed, "seed or clear")
	preset := flag.String("preset", "full", "stage preset: full or remaining")
	only := flag.String("only", "", "comma-separated stages to run")
	skip := flag.String("skip", "", "comma-separated stages to skip")
	yes := flag.Bool("yes", false, "do not ask for confirmation before clearing")
	flag.Parse()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger.
	log := logger.New("seeder", cfg.LogLevel)
	log.Info("starting seeder",
		slog.String("environment", cfg.Environment),
		slog.String("action", *action),
		slog.String("preset", *preset),
	)

	// Create the application with all dependencies wired.
	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create a context that is cancelled on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = application.Run(ctx, app.Options{
		Action: *action,
		Preset: *preset,
		Only:   splitList(*only),
		Skip:   splitList(*skip),
		Yes:    *yes,
		In:     os.Stdin,
		Out:    os.Stderr,
	})
	if err != nil {
		log.Error("seeder failed", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}

	log.Info("seeder finished")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
