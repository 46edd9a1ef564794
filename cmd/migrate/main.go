// Command migrate applies the board schema to the configured database.
// Non-production connects migrate automatically; production deployments run
// this explicitly as a release step.
package main

import (
	"log"

	"hygall/internal/config"
	"hygall/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema migration completed")
}
