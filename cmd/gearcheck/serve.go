package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gearcheck/backend/config"
	delivery "github.com/gearcheck/backend/internal/delivery/http"
	"github.com/gearcheck/backend/internal/infrastructure/inventory"
	"github.com/gearcheck/backend/internal/infrastructure/store"
	"github.com/gearcheck/backend/internal/logger"
	"github.com/gearcheck/backend/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the checklist HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	containers, err := cfg.EquippableContainers()
	if err != nil {
		return err
	}

	checklistStore, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer checklistStore.Close()

	loader := inventory.NewLoader(containers)
	service := usecase.NewChecklistService(checklistStore, loader, log, usecase.ChecklistServiceConfig{
		EnableDebugLogging: cfg.Log.Level == "debug",
	})

	handler := delivery.NewHandler(service, log)
	router := delivery.SetupRouter(cfg, log, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
