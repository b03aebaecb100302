package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/linksaver/linksaver/internal/app"
)

func main() {
	// Local development convenience, missing .env is fine.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ linksaver failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ linksaver failed: %v", err)
	}
}
