package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kozaktomas/photo-archive/internal/config"
	"github.com/kozaktomas/photo-archive/internal/event"
	"github.com/spf13/cobra"
)

var (
	configFile string
	demoMode   bool
)

var rootCmd = &cobra.Command{
	Use:   "photo-archive",
	Short: "Browse a photo archive by tags, people, places and time",
	Long: `Photo Archive serves a faceted search over a photo collection stored in
PostgreSQL or MariaDB. Matching photos are grouped into time ranges so that
any result set can be navigated with a handful of links.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file (overrides "+config.FileEnv+")")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Use an in-memory archive with generated photos instead of a database")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()

	if configFile != "" {
		_ = os.Setenv(config.FileEnv, configFile)
	}
}

// loadConfig reads the configuration and applies its log settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := event.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, fmt.Errorf("configuring log: %w", err)
	}
	return cfg, nil
}
