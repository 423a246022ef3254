package main

import (
	"matchboxd_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; config falls back to config.yaml.
	_ = godotenv.Load()

	app.Run()
}
