package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/kozaktomas/photo-archive/internal/config"
	"github.com/kozaktomas/photo-archive/internal/constants"
	"github.com/kozaktomas/photo-archive/internal/event"
	"github.com/kozaktomas/photo-archive/internal/metrics"
	"github.com/kozaktomas/photo-archive/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Photo Archive web server.
The server answers faceted searches at /search/ and /api/v1/search, offers
facet autocompletion and exposes Prometheus metrics at /metrics. Requests
carrying the API token as a Bearer token also see private photos.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("port", 8080, "Port to listen on (overrides WEB_PORT)")
	cmd.Flags().String("host", "0.0.0.0", "Host to bind to (overrides WEB_HOST)")
	cmd.Flags().String("api-token", "", "Token granting access to private photos (defaults to WEB_API_TOKEN, then random)")
}

// applyServeFlags lets explicitly set flags win over the configuration.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("port") {
		cfg.Web.Port = mustGetInt(cmd, "port")
	}
	if cmd.Flags().Changed("host") {
		cfg.Web.Host = mustGetString(cmd, "host")
	}
	if token := mustGetString(cmd, "api-token"); token != "" {
		cfg.Web.APIToken = token
	}
	if cfg.Web.APIToken == "" {
		cfg.Web.APIToken = uuid.NewString()
		fmt.Printf("Generated API token: %s\n", cfg.Web.APIToken)
	}
	return cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}

	closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	event.Log.Info(versionString())
	server := web.NewServer(cfg, metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Photo Archive on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
