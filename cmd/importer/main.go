// Command importer bulk-loads equipment or customer CSVs into a business
// from the command line, sharing the import pipeline with the API endpoint.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/importer"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository/postgres"
)

var (
	cfgFile    string
	businessID string
	sourceURL  string
	sourceFile string
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Bulk CSV import for rental businesses",
	Long: `Imports equipment or customer records from a CSV file, raw URL, or
Google Sheets link into one business. Rows that cannot be imported are
reported individually; the rest of the batch still goes through.`,
	SilenceUsage: true,
}

var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "Import equipment records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(importer.TargetEquipment)
	},
}

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Import customer records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(importer.TargetCustomers)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.dev.yaml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&businessID, "business", "", "business id to import into (required)")
	rootCmd.PersistentFlags().StringVar(&sourceURL, "url", "", "CSV or Google Sheets URL")
	rootCmd.PersistentFlags().StringVar(&sourceFile, "file", "", "local CSV file path")

	rootCmd.AddCommand(equipmentCmd)
	rootCmd.AddCommand(customersCmd)
}

func runImport(target importer.Target) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if businessID == "" {
		return fmt.Errorf("--business is required")
	}
	if sourceURL == "" && sourceFile == "" {
		return fmt.Errorf("one of --url or --file is required")
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	store := postgres.NewStore(db)
	imp := importer.New(store.CustomerRepository, store.EquipmentRepository)

	req := importer.Request{
		BusinessID: businessID,
		Target:     target,
		URL:        sourceURL,
	}
	if sourceFile != "" {
		content, err := os.ReadFile(sourceFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", sourceFile, err)
		}
		req.Content = string(content)
	}

	result, err := imp.Run(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d rows, skipped %d\n", result.Imported, result.Skipped)
	for _, e := range result.Errors {
		fmt.Printf("  %s\n", e)
	}
	if result.Imported == 0 && result.Skipped > 0 {
		return fmt.Errorf("no rows imported")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
