package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Migrate applies every up migration in file name order. All migrations are
// idempotent, so it is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := MigrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		if err := execMigration(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMigration runs the single migration whose file name ends with
// migrationName, e.g. "seed_parties.up" or "create_tables.down".
func ApplyMigration(ctx context.Context, db *sql.DB, migrationName string) (string, error) {
	fileName, err := migrationFileName(migrationName)
	if err != nil {
		return "", err
	}
	return fileName, execMigration(ctx, db, fileName)
}

// MigrationNames lists the embedded migration files in name order.
func MigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationFiles, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func migrationFileName(migrationName string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	names, err := MigrationNames()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if regex.MatchString(name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("migration file not found: %s", migrationName)
}

func execMigration(ctx context.Context, db *sql.DB, fileName string) error {
	content, err := migrationFiles.ReadFile(migrationsDir + "/" + fileName)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", fileName, err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", fileName, err)
	}
	return nil
}
