package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"sweetshop/internal/client/cli"
	"sweetshop/internal/client/config"
	"sweetshop/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.Run(ctx)
}
