package main

import (
	"context"

	"github.com/hetulpatel/personjob/internal/cache"
	"github.com/hetulpatel/personjob/internal/config"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/storage/sqlite"
)

// Switches an existing database to PERSONJOB_VARIANT. Rows are not kept.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("load config: %v", err)
	}
	variant, err := models.ParseVariant(cfg.Variant)
	if err != nil {
		logging.Fatalf("%v", err)
	}

	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logging.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Migrate(ctx, variant); err != nil {
		logging.Fatalf("migrate: %v", err)
	}
	if cfg.RosterCacheEnabled() {
		if err := cache.ForgetRoster(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.Path()); err != nil {
			logging.Errorf("roster cache not cleared: %v", err)
		}
	}
	logging.Infof("SQLite schema migrated to the %s layout at %s", variant, store.Path())
}
