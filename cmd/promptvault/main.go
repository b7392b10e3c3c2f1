package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/TK2F/promptvault/internal/cli"
	"github.com/TK2F/promptvault/internal/config"
	"github.com/TK2F/promptvault/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger, err := logging.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		stop()
		log.Fatalf("%v", err)
	}
}
