package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/researchhub/backend/internal/server"
	"github.com/researchhub/backend/internal/server/config"
)

func main() {
	// a missing .env is fine, real deployments use the environment
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	if cfg.SecretKey == "" {
		log.Fatal("JWT_SECRET is required")
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
