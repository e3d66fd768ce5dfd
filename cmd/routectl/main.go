package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	routingFile string
}

var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Route client support queries to a category, team and handler",
	Long:  "routectl classifies a client query, assigns it to the least loaded handler\nand prints remediation suggestions to try before escalation.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.routingFile, "routing-file", os.Getenv("ROUTING_FILE"),
		"Routing catalog YAML (default: embedded catalog)")

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
