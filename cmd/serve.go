package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deltaddl/deltaddl/internal/api"
	"github.com/deltaddl/deltaddl/internal/logging"
)

var servePort int
var serveDevMode bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the DDL generation API server",
	Long: `Start the REST API server. It exposes model parsing and DDL generation
over HTTP so other tools can integrate without shelling out to the CLI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfigIfPresent()

		logDir := ""
		level := logLevel
		if cfg != nil {
			logDir = cfg.Logging.Directory
			if !cmd.Root().PersistentFlags().Changed("log-level") {
				level = cfg.Logging.Level
			}
		}
		logger, err := logging.Setup(level, logDir)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}

		srv := api.New(logger, servePort,
			api.WithConfig(cfg),
			api.WithDevMode(serveDevMode),
		)

		// Graceful shutdown on signals
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		fmt.Fprintf(os.Stderr, "DeltaDDL API: http://localhost:%d\n", servePort)

		select {
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return err
			}
		case <-ctx.Done():
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8230, "port for the API server")
	serveCmd.Flags().BoolVar(&serveDevMode, "dev", false, "enable CORS for development mode")
	rootCmd.AddCommand(serveCmd)
}
