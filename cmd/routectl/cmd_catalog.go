package main

import (
	"github.com/spf13/cobra"

	"github.com/aescanero/dago-query-router/internal/catalog"
	"github.com/aescanero/dago-query-router/internal/config"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List categories with their team, suggestions and the handler pool",
	RunE:  runCatalog,
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	routing, err := config.LoadRouting(rootFlags.routingFile)
	if err != nil {
		return err
	}

	cat, err := catalog.New(routing.CatalogEntries())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderCatalog(out, cat)
	renderHandlers(out, routing.PoolHandlers())
	return nil
}
