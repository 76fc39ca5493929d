// Command migrate applies or rolls back the embedded schema migrations.
//
// Usage:
//
//	migrate up
//	migrate down
package main

import (
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"

	"account_backend/internal/platform/config"
	"account_backend/internal/platform/db"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fall back to the full config so the required-variable error
		// message stays consistent with the server.
		cfg, err := config.Load()
		if err != nil {
			log.Fatal(err)
		}
		databaseURL = cfg.DatabaseURL
	}

	m, err := db.NewMigrator(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatalf("unknown direction %q (want up or down)", direction)
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}
	log.Printf("migrations %s: done", direction)
}
