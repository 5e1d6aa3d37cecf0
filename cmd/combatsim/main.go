// Package main provides the combat simulator binary: it generates one
// encounter from a seed and plays it with a Lua strategy or at the console.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/spiresim/internal/config"
	"github.com/cory-johannsen/spiresim/internal/observability"
	"github.com/cory-johannsen/spiresim/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (empty uses defaults and SPIRESIM_* env)")
	strategy := flag.String("strategy", "", "Lua strategy name; overrides scripting.strategy")
	color := flag.Bool("color", true, "ANSI colors on the interactive console")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *strategy != "" {
		cfg.Scripting.Strategy = *strategy
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := simulate(ctx, cfg, os.Stdin, os.Stdout, *color, logger)
	if err != nil {
		logger.Fatal("simulating combat", zap.Error(err))
	}
	fmt.Fprintf(os.Stdout, "%s after %d turns, hp %d/%d (seed %s, encounter %s)\n",
		out.Result.Outcome, out.Result.Turns, out.Result.HP, out.Result.HPMax,
		out.Record.Seed, out.Record.Encounter)

	if cfg.Database.Enabled {
		if err := persist(ctx, cfg.Database, out.Record, logger); err != nil {
			logger.Fatal("saving combat record", zap.Error(err))
		}
	}
	logger.Info("combatsim finished", zap.Duration("elapsed", time.Since(start)))
}

// persist stores rec in the configured database.
func persist(ctx context.Context, db config.DatabaseConfig, rec postgres.Record, logger *zap.Logger) error {
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, db)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	logger.Info("database connected",
		zap.String("host", db.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	saved, err := postgres.NewCombatRepository(pool.DB()).Save(ctx, rec)
	if err != nil {
		return err
	}
	logger.Info("combat record saved",
		zap.Stringer("id", saved.ID),
		zap.Int("notifications", len(saved.Log)),
	)
	return nil
}
