package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/logger"
	"fintrack/internal/services"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data",
}

var seedDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Insert the shared default categories",
	Long:  `Insert any missing default income and expense categories. Existing defaults are left alone.`,
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, manager, err := openDatabase()
		if err != nil {
			return err
		}
		defer manager.Close()

		if err := manager.Migrate(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}

		created, err := services.NewCategoryService(manager.DB()).SeedDefaults()
		if err != nil {
			return fmt.Errorf("failed to seed default categories: %w", err)
		}
		logger.Get().Infof("Seeded %d default categories (%s)", created, cfg.Driver)
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedDefaultsCmd)
}
