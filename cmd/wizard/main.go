// Command wizard runs the kiosk feedback flow in a terminal. It drives
// the four-screen wizard directly against the domain systems: category
// select, text entry, optional AI enhancement review, and confirmation
// with a best-effort submit.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kudoslabs/kudos/internal/config"
	"github.com/kudoslabs/kudos/internal/enhance"
	"github.com/kudoslabs/kudos/internal/feedback"
	"github.com/kudoslabs/kudos/internal/infrastructure"
	"github.com/kudoslabs/kudos/internal/tones"
	"github.com/kudoslabs/kudos/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed:", err)
	}
	infra.Lifecycle.WaitForStartup()

	tonesSystem := tones.New(infra.Database, infra.Logger, cfg.API.Pagination)
	feedbackSystem := feedback.New(infra.Database, infra.Logger, cfg.API.Pagination)
	enhanceSystem := enhance.New(
		enhance.NewCompleter(cfg.Agent),
		tonesSystem,
		infra.Logger,
	)

	rt := &wizard.Runtime{
		Interactor: NewTerminalInteractor(os.Stdin, os.Stdout),
		Enhancer:   enhanceSystem,
		Submitter:  feedbackSystem,
		Logger:     infra.Logger.With("module", "wizard"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	record, err := wizard.Run(ctx, rt)
	if err != nil {
		log.Fatal("wizard failed:", err)
	}

	infra.Logger.Info("wizard complete",
		"category", record.Category,
		"submitted", record.Submitted,
	)

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed:", err)
	}
}
