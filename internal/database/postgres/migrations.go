package postgres

import (
	"context"
	"embed"
	"io/fs"

	"github.com/kozaktomas/photo-archive/internal/database/sqlstore"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic("postgres migrations: " + err.Error())
	}
	return sub
}

// Migrate applies all pending migrations and returns their names.
func (p *Pool) Migrate(ctx context.Context) ([]string, error) {
	return sqlstore.Migrate(ctx, p.db, sqlstore.Postgres, migrations())
}

// MigrationsApplied returns the list of applied migrations.
func (p *Pool) MigrationsApplied(ctx context.Context) ([]string, error) {
	return sqlstore.AppliedMigrations(ctx, p.db)
}
