package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/kozaktomas/photo-archive/internal/event"
)

var log = event.Log

// getAppliedMigrations returns a set of already-applied migration versions.
func getAppliedMigrations(ctx context.Context, db *sql.DB, dialect Dialect) (map[string]bool, error) {
	if _, err := db.ExecContext(ctx, dialect.MigrationsDDL); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}

	versions, err := AppliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// getPendingMigrationFiles returns sorted SQL migration filenames not yet applied.
func getPendingMigrationFiles(migrations fs.FS, applied map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") && !applied[e.Name()] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// splitStatements breaks a migration into single statements. A statement
// ends with a line ending in a semicolon.
func splitStatements(content string) []string {
	var (
		stmts []string
		cur   strings.Builder
	)
	for line := range strings.Lines(content) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		if strings.HasSuffix(trimmed, ";") {
			stmts = append(stmts, strings.TrimSuffix(strings.TrimSpace(cur.String()), ";"))
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

// Migrate applies the pending *.sql files of migrations in name order and
// returns the names it applied.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, migrations fs.FS) ([]string, error) {
	applied, err := getAppliedMigrations(ctx, db, dialect)
	if err != nil {
		return nil, err
	}

	files, err := getPendingMigrationFiles(migrations, applied)
	if err != nil {
		return nil, err
	}

	record := "INSERT INTO schema_migrations (version) VALUES (" + dialect.Placeholder(1) + ")"
	for _, file := range files {
		content, err := fs.ReadFile(migrations, file)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("begin transaction for %s: %w", file, err)
		}

		for _, stmt := range splitStatements(string(content)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return nil, fmt.Errorf("execute migration %s: %w", file, err)
			}
		}

		if _, err := tx.ExecContext(ctx, record, file); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit migration %s: %w", file, err)
		}

		log.WithField("dialect", dialect.Name).Infof("applied migration %s", file)
	}

	return files, nil
}

// AppliedMigrations returns the list of applied migrations.
func AppliedMigrations(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate migration versions: %w", err)
	}
	return versions, nil
}

// AppliedMigrations returns the migrations recorded in the store's database.
func (s *Store) AppliedMigrations(ctx context.Context) ([]string, error) {
	return AppliedMigrations(ctx, s.db)
}
