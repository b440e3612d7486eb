package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

// useEmbeddedMigrations points goose at the schema and seed files compiled into the binary
func useEmbeddedMigrations() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// RunMigrations creates the catalog tables and seeds the storefront records
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	if err := useEmbeddedMigrations(); err != nil {
		return err
	}

	if err := goose.Up(db, migrationsDir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Catalog migrations applied")
	return nil
}

// MigrationVersion returns the version of the newest applied migration
func MigrationVersion(db *sql.DB) (int64, error) {
	if err := useEmbeddedMigrations(); err != nil {
		return 0, err
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}
