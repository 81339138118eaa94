package main

import (
	"context"
	"log"

	"github.com/galeria/marketplace-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("galeria API failed: %v", err)
	}
}
