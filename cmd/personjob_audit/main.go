package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hetulpatel/personjob/internal/config"
	"github.com/hetulpatel/personjob/internal/kafka"
	"github.com/hetulpatel/personjob/internal/logging"
	"github.com/hetulpatel/personjob/internal/workers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("load config: %v", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	if !cfg.EventsEnabled() {
		logging.Fatalf("KAFKA_BROKERS is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	brokers := cfg.Brokers()
	if err := kafka.WaitForBroker(ctx, brokers); err != nil {
		logging.Fatalf("kafka: %v", err)
	}

	auditor := workers.NewAuditor()
	logging.Infof("auditing %s as %s", cfg.Topic, cfg.AuditGroup)
	workers.Run(ctx, brokers, cfg.Topic, cfg.AuditGroup, cfg.AuditWorkers, auditor.Handle)

	for _, t := range auditor.Tallies() {
		logging.Infof("%s: %d inserted, %d rejected", t.Table, t.Inserted, t.Rejected)
	}
}
