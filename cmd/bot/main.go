package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamvkosarev/recipe-telegram-bot/config"
	"github.com/iamvkosarev/recipe-telegram-bot/internal/app"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "config.yml"

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to run app: %v", err)
	}
}
