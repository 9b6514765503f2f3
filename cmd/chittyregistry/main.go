package main

import (
	"log"

	"github.com/chittyos/chittyregistry/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ chittyregistry failed to start: %v", err)
	}
}
