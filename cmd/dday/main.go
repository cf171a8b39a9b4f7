// Package main runs the D-Day reminder daemon: it loads the config, opens
// the item store, and keeps the scheduler checking until interrupted.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyunjk/dday-todo/internal/model"
	"github.com/hyunjk/dday-todo/internal/notify"
	"github.com/hyunjk/dday-todo/internal/sched"
	"github.com/hyunjk/dday-todo/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	dataDir := cfg.Storage.DataDir
	if dataDir == "" {
		dataDir = store.DefaultDataDir()
	}

	st, err := store.NewFileStore(dataDir, logger)
	if err != nil {
		return err
	}

	var ledger *store.FiredLedger
	if cfg.Dedupe.Enabled {
		ledger, err = store.NewFiredLedger(filepath.Join(dataDir, "fired.db"))
		if err != nil {
			return err
		}
		defer ledger.Close()
	}

	// Cancel on interrupt so the scheduler's sleep is the only thing a
	// shutdown has to unwind.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	scheduler := sched.New(st, &notify.LogNotifier{Logger: logger}, sched.Config{
		Interval: time.Duration(cfg.Scheduler.CheckIntervalSec) * time.Second,
		Ledger:   ledger,
		Logger:   logger,
	})
	scheduler.Run(ctx)
	return nil
}
