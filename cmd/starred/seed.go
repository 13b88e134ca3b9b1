package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blockedby/starred-jobs/internal/database"
	"github.com/blockedby/starred-jobs/internal/repository"
	"github.com/blockedby/starred-jobs/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the database and insert the seed users",
	Long: `Reset the database and insert the seed users.

Examples:
  starred seed
  starred seed --file ./users.yaml --count 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		count, _ := cmd.Flags().GetInt("count")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		f, err := seed.Load(file)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		n, err := seed.Run(ctx, db, repository.NewUsersRepository(db.GORM), f, count)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("file", "", "seed file (default: built-in list)")
	seedCmd.Flags().Int("count", 0, "insert only the first N users")
}
