// Package db opens the application database connection.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// connectTimeout bounds the startup retry loop. Hosted databases can take a
// few seconds to accept connections after a deploy.
const connectTimeout = 60 * time.Second

// Open connects to Postgres with gorm, retrying until the deadline.
// TranslateError is enabled so driver-specific failures surface as
// gorm sentinel errors (gorm.ErrDuplicatedKey etc.).
func Open(databaseURL string) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)

	deadline := time.Now().Add(connectTimeout)
	for {
		gdb, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
		if err == nil {
			return gdb, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", connectTimeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}
}
