package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/services/ingest"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [csv file]",
	Short: "Load a CSV file of street records into the search index",
	Long: `Reads a comma-separated UTF-8 file with the localized street headers and
writes every valid row to the search index in a single batch. Malformed rows
are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadDependencies()
	if err != nil {
		return err
	}

	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	searchDB, err := searchdb.Open(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer searchDB.Close()

	result, err := ingest.New(logger, searchDB).Load(ctx, filePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully loaded %d items (%d malformed rows skipped)\n", result.Loaded, result.Skipped)
	return nil
}
