// Command fintrackctl runs maintenance tasks against the Fintrack database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/database"
	"fintrack/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "fintrackctl",
	Short:         "Fintrack maintenance tool",
	Long:          `Apply schema migrations and seed reference data for the Fintrack API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase connects using the DB_* environment variables.
func openDatabase() (*database.Config, *database.Manager, error) {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	return dbConfig, manager, nil
}
