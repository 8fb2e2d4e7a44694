package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Paralinkz/ParaTrackz/internal/models"
)

var DB *gorm.DB

// appState is the single-row table carrying cross-invocation app state
type appState struct {
	ID              uint `gorm:"primarykey"`
	ActiveSessionID string
	Dirty           bool
}

// Initialize sets up the archive database connection and runs migrations
func Initialize(dbPath string) error {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Open database connection
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db

	// Run auto-migrations
	if err := runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations creates/updates the archive schema
func runMigrations() error {
	return DB.AutoMigrate(
		&models.Session{},
		&models.Note{},
		&models.Photo{},
		&models.Recording{},
		&appState{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
