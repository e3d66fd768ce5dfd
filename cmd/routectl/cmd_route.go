package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aescanero/dago-query-router/internal/config"
	"github.com/aescanero/dago-query-router/internal/pipeline"
)

var routeFlags struct {
	name  string
	email string
	query string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Route a single query and print the decision",
	RunE:  runRoute,
}

func init() {
	f := routeCmd.Flags()
	f.StringVar(&routeFlags.name, "name", "", "Employee name (required)")
	f.StringVar(&routeFlags.email, "email", "", "Employee email (required)")
	f.StringVar(&routeFlags.query, "query", "", "Client query text (required)")
}

func runRoute(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if rootFlags.routingFile != "" {
		cfg.RoutingFile = rootFlags.routingFile
	}

	logger, err := newCLILogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	zeroShot, err := pipeline.NewZeroShot(cfg, logger)
	if err != nil {
		return err
	}

	p, err := pipeline.Build(cfg, zeroShot, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ClassifierTimeout)
	defer cancel()

	result, err := p.Router.Route(ctx, routeFlags.name, routeFlags.email, routeFlags.query)
	if err != nil {
		return err
	}

	renderResult(cmd.OutOrStdout(), result)
	return nil
}

// newCLILogger keeps stderr quiet unless something goes wrong
func newCLILogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
