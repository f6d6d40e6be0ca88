package main

import (
	"github.com/meghashyamc/streetsearch/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadDependencies()
	if err != nil {
		return err
	}

	return api.Run(cmd.Context(), cfg, logger)
}
