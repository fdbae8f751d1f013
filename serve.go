package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/CrowderSoup/monday-dashboard/database"
	"github.com/CrowderSoup/monday-dashboard/handlers"
	"github.com/CrowderSoup/monday-dashboard/services"
	"github.com/CrowderSoup/monday-dashboard/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			if port != "" {
				overrides["port"] = port
			}
			return runServe(cmd, opts, overrides)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *rootOptions, overrides map[string]any) error {
	cfg, logger, err := opts.load(cmd, overrides)
	if err != nil {
		return err
	}

	// Initialize upload journal
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()
	journal := database.NewJournalService(db)

	client := newMondayClient(cfg)
	if !client.Configured() {
		logger.Warn("MONDAY_API_TOKEN is not set; API calls will fail until it is")
	}

	// Initialize WebSocket hub
	hub := services.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	uploader := services.NewUploader(client,
		services.WithDelay(cfg.UploadDelay()),
		services.WithJournal(journal),
		services.WithBroadcaster(hub),
		services.WithLogger(logger),
	)

	pages, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Monday:         handlers.NewMondayHandler(client, hub),
		Timeline:       handlers.NewTimelineHandler(client, uploader, journal, hub),
		Dashboard:      handlers.NewDashboardHandler(client, hub, journal, pages),
		Static:         web.Static(),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	// Bulk uploads pace their writes, so responses may take a while.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx := cmd.Context()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "monday_api", cfg.MondayAPIURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
