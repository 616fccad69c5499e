package main

import (
	"github.com/joho/godotenv"

	"gymdesk_backend/internal/app"
)

func main() {
	// Optional: local development reads secrets from .env.
	_ = godotenv.Load()

	app.Run()
}
