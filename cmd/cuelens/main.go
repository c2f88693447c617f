package main

import (
	"log"

	"github.com/cuelens/cuelens/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ cuelens failed to start: %v", err)
	}
}
