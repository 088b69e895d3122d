package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-hiring-assistant/config"
	"go-hiring-assistant/internal/app"
	"go-hiring-assistant/internal/delivery/cli"
	"go-hiring-assistant/pkg/logger"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Keep the conversation readable; only warnings are logged
	logger.Init("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	chat := cli.NewChat(container.InterviewUC, uuid.NewString(), os.Stdin, os.Stdout)
	if err := chat.Run(ctx); err != nil {
		logger.Log.Error("Interview aborted", "error", err)
		os.Exit(1)
	}
}
