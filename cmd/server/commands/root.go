package commands

import (
	"fmt"
	"os"

	"github.com/ZeroSibe/nc-news/internal/config"
	"github.com/ZeroSibe/nc-news/internal/database"
	"github.com/ZeroSibe/nc-news/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	seedFile  string
	noMigrate bool
	logLevel  string
)

// rootCmd represents the base command; with no subcommand it serves the API
var rootCmd = &cobra.Command{
	Use:   "nc-news",
	Short: "nc-news - articles, comments, topics and users over HTTP",
	Long: `nc-news serves a small news dataset (articles, comments, topics, users)
as a JSON API backed by PostgreSQL or an embedded SQLite file.

Configuration is read from the environment (PORT, DB_DRIVER, DATABASE_URL,
DB_PATH, LOG_LEVEL, ...). Flags override the matching variables.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed-file", "", "Seed fixture file (overrides SEED_FILE)")
	rootCmd.PersistentFlags().BoolVar(&noMigrate, "no-migrate", false, "Skip applying the bundled schema on start")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if seedFile != "" {
		cfg.Seed.File = seedFile
	}
	if noMigrate {
		cfg.Database.AutoMigrate = false
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// openDatabase connects and, unless disabled, applies migrations
func openDatabase(cfg *config.Config, log zerolog.Logger) (*database.DB, error) {
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	return db, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(cfg.Log.Level, cfg.Log.Format)
}
