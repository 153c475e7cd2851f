package main

import (
	"context"
	"os"
	"time"

	"github.com/hetulpatel/personjob/internal/cache"
	"github.com/hetulpatel/personjob/internal/config"
	"github.com/hetulpatel/personjob/internal/kafka"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/queue"
	"github.com/hetulpatel/personjob/internal/seed"
	"github.com/hetulpatel/personjob/internal/storage/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("load config: %v", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	variant, err := models.ParseVariant(cfg.Variant)
	if err != nil {
		logging.Fatalf("%v", err)
	}

	ctx := context.Background()

	if err := sqlite.Reset(cfg.SQLitePath); err != nil {
		logging.Fatalf("reset sqlite: %v", err)
	}
	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		logging.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.CreateTables(ctx, variant); err != nil {
		logging.Fatalf("create tables: %v", err)
	}

	var opts []seed.Option
	if cfg.EventsEnabled() {
		if pub := openPublisher(ctx, cfg); pub != nil {
			defer pub.Close()
			opts = append(opts, seed.WithPublisher(pub))
		}
	}
	if cfg.RosterCacheEnabled() {
		roster, err := cache.NewRedisRosterCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RosterTTL, store.Path())
		if err != nil {
			logging.Errorf("roster cache disabled: %v", err)
		} else {
			defer roster.Close()
			opts = append(opts, seed.WithRosterCache(roster))
		}
	}

	report, err := seed.New(store, variant, os.Stdout, opts...).Run(ctx, seed.FixturesFor(variant))
	if err != nil {
		logging.Fatalf("read back rows: %v", err)
	}
	logging.Infof("seeded %s (%s): %d rows inserted, %d rejected",
		store.Path(), variant, report.Inserted(), report.Rejected())
}

// openPublisher returns nil when the broker cannot be reached; the run then
// goes ahead without events.
func openPublisher(ctx context.Context, cfg *config.Config) *queue.Publisher {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	brokers := cfg.Brokers()
	if err := kafka.EnsureTopic(ctx, brokers, cfg.Topic); err != nil {
		logging.Errorf("record events disabled: %v", err)
		return nil
	}
	logging.Debugf("publishing record events to %s on %v", cfg.Topic, brokers)
	return queue.NewPublisher(kafka.NewWriter(brokers, cfg.Topic))
}
