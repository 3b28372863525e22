package main

import (
	"log"

	"github.com/joho/godotenv"

	"librarian/internal/config"
	"librarian/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
