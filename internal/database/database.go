package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saamdocs/docgen-service/internal/document"
	"github.com/saamdocs/docgen-service/pkg/logger"
)

// Connect opens a Postgres connection with retry/backoff to tolerate startup
// races, then runs migrations.
func Connect(databaseURL string) (*gorm.DB, error) {
	const maxAttempts = 5
	backoff := time.Second
	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to database: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database connect: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// ConnectEphemeral opens an in-memory SQLite store for test mode and runs
// migrations. Data does not survive the process.
func ConnectEphemeral() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the canonical single-table schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&document.GeneratedDocument{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
