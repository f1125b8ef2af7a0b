package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-archive/internal/config"
	"github.com/kozaktomas/photo-archive/internal/database/mariadb"
	"github.com/kozaktomas/photo-archive/internal/database/postgres"
	"github.com/kozaktomas/photo-archive/internal/database/sqlstore"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Applies the pending schema migrations of the configured database
(DATABASE_DRIVER and DATABASE_URL). With --status only lists the migrations
that have already been applied.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().Bool("status", false, "List applied migrations without changing anything")
}

// migrator is the part of a connection pool the migrate command needs.
type migrator interface {
	Migrate(ctx context.Context) ([]string, error)
	Store() *sqlstore.Store
	Close() error
}

func openMigrator(cfg *config.DatabaseConfig) (migrator, error) {
	if cfg.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	if cfg.Driver == "mysql" {
		return mariadb.NewPool(cfg)
	}
	return postgres.NewPool(cfg)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := openMigrator(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	ctx := context.Background()

	if mustGetBool(cmd, "status") {
		versions, err := pool.Store().AppliedMigrations(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d migrations applied\n", len(versions))
		for _, v := range versions {
			fmt.Printf("  %s\n", v)
		}
		return nil
	}

	applied, err := pool.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if len(applied) == 0 {
		fmt.Println("Database is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Printf("Applied %s\n", v)
	}
	return nil
}
