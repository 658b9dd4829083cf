package commands

import (
	"fmt"

	"github.com/ZeroSibe/nc-news/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the database contents with the seed fixture",
	Long: `Empties the topics, users, articles and comments tables and loads the
YAML fixture named by --seed-file (or SEED_FILE) in a single transaction.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	fixture, err := seed.Load(cfg.Seed.File)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := seed.New(db, log).Run(cmd.Context(), fixture)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d topics, %d users, %d articles, %d comments from %s\n",
		result.Topics, result.Users, result.Articles, result.Comments, cfg.Seed.File)
	return nil
}
