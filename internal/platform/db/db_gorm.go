// Package db opens the Postgres connection used for user persistence.
package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fynix_backend/internal/feature/auth/domain/entity"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Config holds the database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// BuildDSN renders the Postgres connection string for the given config.
func BuildDSN(cfg Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
}

// Opener abstracts gorm.Open so connection retries can be tested without a
// real database.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry attempts to open the database, retrying until the timeout
// elapses. Container startup races make the first attempts routinely fail.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", timeout, err)
		}
		time.Sleep(retryInterval)
	}
}

// OpenDB connects to Postgres and runs the schema migration.
func OpenDB(cfg Config, timeout time.Duration) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)
	db, err := ConnectWithRetry(dsn, timeout, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}
