package main

import (
	"context"
	"log"

	"halalan/internal/app/bootstrap"

	"github.com/joho/godotenv"
)

// API process entrypoint.
// Data flow:
// 1) Load .env (optional) and config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Migrate schema and start the HTTP server.
func main() {
	_ = godotenv.Load()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("halalan api: %v", err)
	}
	defer func() {
		_ = app.Close()
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("halalan api: %v", err)
	}
}
