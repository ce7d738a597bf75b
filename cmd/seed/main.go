// Command seed inserts a fixed set of subscribers into the configured
// record store and exits.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/bissquit/subscribers-api/internal/app"
	"github.com/bissquit/subscribers-api/internal/config"
	"github.com/bissquit/subscribers-api/internal/seed"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx := context.Background()
	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = seed.Run(ctx, store.Repository, logger)
	return err
}
