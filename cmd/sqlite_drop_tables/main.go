package main

import (
	"context"

	"github.com/hetulpatel/personjob/internal/cache"
	"github.com/hetulpatel/personjob/internal/config"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("load config: %v", err)
	}
	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logging.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.DropTables(ctx); err != nil {
		logging.Fatalf("drop tables: %v", err)
	}
	if cfg.RosterCacheEnabled() {
		if err := cache.ForgetRoster(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.Path()); err != nil {
			logging.Errorf("roster cache not cleared: %v", err)
		}
	}
	logging.Infof("SQLite tables dropped at %s", store.Path())
}
