package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradescout/tradescout/internal/api"
	"github.com/tradescout/tradescout/internal/api/handlers"
	"github.com/tradescout/tradescout/internal/storage"
	"github.com/tradescout/tradescout/pkg/database"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health                    - Health check
  GET  /api/crossovers/{symbol}   - Golden/death cross report
  GET  /api/screener/{strategy}   - Latest ranked picks
  GET  /api/alerts                - Latest alerts by category
  POST /api/scan                  - Trigger a scan
  GET  /api/stream                - Websocket scan notifications

Example:
  go run ./cmd/tradescout api
  go run ./cmd/tradescout api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "override the configured API port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	// Persistence is optional; without a database the API serves live
	// scans and crossover reports only.
	var store handlers.ScanStore
	if d.cfg.Database.URL != "" {
		db, err := database.New(d.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := storage.EnsureSchema(cmd.Context(), db.Pool); err != nil {
			return err
		}
		store = storage.NewScanRepository(db.Pool)
		d.log.Info("Connected to database")
	} else {
		d.log.Warn("DATABASE_URL not set, running without persistence")
	}

	hub := api.NewHub(d.log)
	defer hub.Close()

	scanHandler := handlers.NewScanHandler(d.scanner, store, hub, d.log)
	router := api.NewRouter(scanHandler, hub, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
