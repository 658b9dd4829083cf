package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZeroSibe/nc-news/internal/api"
	"github.com/ZeroSibe/nc-news/internal/repository"
	"github.com/ZeroSibe/nc-news/internal/seed"
	"github.com/ZeroSibe/nc-news/internal/service"
	"github.com/spf13/cobra"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "Load the seed fixture before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	log := newLogger(cfg)
	log.Info().Msg("Starting nc-news API server...")

	// Initialize database
	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if seedOnStart {
		fixture, err := seed.Load(cfg.Seed.File)
		if err != nil {
			return err
		}
		if _, err := seed.New(db, log).Run(cmd.Context(), fixture); err != nil {
			return err
		}
	}

	// Initialize repositories and services
	repos := repository.New(db)
	services := service.NewServices(repos, log)

	// Initialize router
	router := api.NewRouter(services, db, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("driver", db.Driver()).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
