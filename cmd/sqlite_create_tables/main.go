package main

import (
	"context"

	"github.com/hetulpatel/personjob/internal/config"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/models"
	"github.com/hetulpatel/personjob/internal/storage/sqlite"
)

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

	if err := store.CreateTables(context.Background(), variant); err != nil {
		logging.Fatalf("create tables: %v", err)
	}
	logging.Infof("SQLite %s tables created at %s", variant, store.Path())
}
