package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmehra2102/TaskList/internal/app"
	"github.com/dmehra2102/TaskList/internal/infrastructure/config"
	"github.com/dmehra2102/TaskList/internal/infrastructure/logging"
	"github.com/dmehra2102/TaskList/internal/infrastructure/taskstore"
	"github.com/dmehra2102/TaskList/internal/mcp"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr.
	logger, err := logging.New(cfg.Environment, cfg.LogLevel, cfg.LogFormat, "stderr")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := taskstore.Open(context.Background(), cfg.GetStoreConfig(), logger)
	if err != nil {
		logger.Fatal("Failed to initialize task store", zap.Error(err))
	}
	defer store.Close()

	lister := app.NewTaskLister(store.Store, logger, cfg.DatabaseTimeout)
	s := mcp.NewServer(lister, logger, serviceVersion)

	if err := mcp.Serve(s); err != nil {
		logger.Error("MCP server stopped", zap.Error(err))
		os.Exit(1)
	}
}
