package main

import (
	"context"
	"fmt"

	"github.com/hetulpatel/personjob/internal/cache"
	"github.com/hetulpatel/personjob/internal/config"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/seed"
	"github.com/hetulpatel/personjob/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("load config: %v", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logging.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	variant, err := store.Variant(ctx)
	if err != nil {
		logging.Fatalf("%s: %v. Run personjob first.", store.Path(), err)
	}

	var roster cache.RosterCache
	if cfg.RosterCacheEnabled() {
		roster, err = cache.NewRedisRosterCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RosterTTL, store.Path())
		if err != nil {
			logging.Errorf("roster cache disabled: %v", err)
			roster = nil
		} else {
			defer roster.Close()
		}
	}

	for _, table := range variant.Tables() {
		lines, err := seed.CachedLines(ctx, roster, store, variant, table)
		if err != nil {
			logging.Fatalf("list %s: %v", table, err)
		}
		fmt.Printf("%s (%d):\n", table, len(lines))
		for _, line := range lines {
			fmt.Printf("  %s\n", line)
		}
	}
}
