package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/muskanVaswani/sudharsetu-backend/internal/config"
)

// Connect opens the complaint store. With no DATABASE_URL configured it
// falls back to an in-memory SQLite database, scoping every record to
// the running process. Pointing DATABASE_URL at Postgres makes the
// store durable without changing any service contract.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	// cache=shared keeps every pooled connection on the same in-memory
	// database
	return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
}
