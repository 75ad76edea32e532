// Command migrate applies or inspects the embedded goose migrations.
//
// Usage: migrate [up|down|status]   (default up)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/sapl-backend/internal/app"
	"github.com/heartmarshall/sapl-backend/internal/config"
	"github.com/heartmarshall/sapl-backend/migrations"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "abort after this long")
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log).With("command", "migrate "+command)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, logger, cfg.Database.DSN, command); err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dsn, command string) error {
	if command == "up" {
		n, err := migrations.Up(ctx, dsn)
		if err != nil {
			return err
		}
		logger.Info("migrate up completed", slog.Int("applied", n))
		return nil
	}

	db, err := migrations.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}

	switch command {
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
		logger.Info("migrate down completed", slog.Int64("version", result.Source.Version))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("goose status: %w", err)
		}
		for _, s := range statuses {
			logger.Info("migration",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)),
				slog.Bool("applied", s.State == goose.StateApplied),
			)
		}
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
	return nil
}
