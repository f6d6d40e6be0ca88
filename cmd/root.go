package main

import (
	"fmt"

	"github.com/meghashyamc/streetsearch/config"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/spf13/cobra"
)

var envFlag string

var rootCmd = &cobra.Command{
	Use:   "streetsearch",
	Short: "Search street records by name, code or neighborhood",
	Long: `streetsearch loads street records from a CSV file into a search index
and serves them over HTTP with free, accurate and phrase search modes.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "", "config environment to load (defaults to $ENV or local)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loadCmd)
}

func loadDependencies() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(envFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, logger.New(cfg.GetLogLevel()), nil
}
