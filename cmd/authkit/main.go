package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Ohuru-Tech/authkit/internal/app"
	"github.com/Ohuru-Tech/authkit/internal/config"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
