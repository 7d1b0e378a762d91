package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/backend/internal/db"
	"github.com/edusphere/backend/internal/pkg/logger"
)

// Migrator applies SQL migration files and records them in schema_migrations
type Migrator struct {
	db *pgxpool.Pool
}

// NewMigrator creates a new migrator
func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{
		db: pool,
	}
}

// ensureVersionTable creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isApplied checks whether a version has already been recorded
func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status for version %s: %w", version, err)
	}
	return exists, nil
}

// MigrateFromFile applies a single migration file. Already-applied versions
// are skipped. The statements and the version record commit in one
// transaction, so a failed migration leaves no partial state behind.
func (m *Migrator) MigrateFromFile(ctx context.Context, path string) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	filename := filepath.Base(path)
	version := versionFromFilename(filename)

	applied, err := m.isApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().
			Str("file", filename).
			Str("version", version).
			Msg("Migration already applied, skipping")
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", filename, err)
	}

	logger.Info().Str("file", filename).Msg("Applying migration")

	err = db.WithTransaction(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
			version, time.Now()); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().Str("file", filename).Str("version", version).Msg("Migration applied")
	return nil
}

// MigrateFromDirectory applies all SQL files in a directory in version order
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	sqlFiles, err := listSQLFiles(dirPath)
	if err != nil {
		return err
	}

	for _, file := range sqlFiles {
		if err := m.MigrateFromFile(ctx, filepath.Join(dirPath, file)); err != nil {
			return err
		}
	}

	return nil
}

// versionFromFilename extracts the version prefix from a migration
// filename (e.g. "000001_init.sql" => "000001")
func versionFromFilename(filename string) string {
	return strings.Split(filename, "_")[0]
}

// listSQLFiles returns the .sql filenames in a directory sorted by name,
// which orders them by version prefix
func listSQLFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory %s: %w", dirPath, err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	return sqlFiles, nil
}
