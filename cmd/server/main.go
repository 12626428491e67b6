package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/booktracker/internal/logging"
	"github.com/dmitrijs2005/booktracker/internal/server"
	"github.com/dmitrijs2005/booktracker/internal/server/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), err.Error())
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		logger.Error(context.Background(), err.Error())
		os.Exit(1)
	}
}
