package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baltpermits/internal/config"
	"baltpermits/internal/logger"
	"baltpermits/internal/permits"
)

var rootCmd = &cobra.Command{
	Use:   "baltpermits",
	Short: "Query Baltimore City building permits",
	Long: `baltpermits - Baltimore City building permit queries

Queries the city's public permit dataset (an ArcGIS FeatureServer layer)
by address, neighborhood, date range, case number, or recency, and can
count permits matching an arbitrary filter.

Run it directly from the command line, or start the MCP server so AI
tools like Claude Desktop or Cursor can query permits themselves.

Quick Start:
  baltpermits search --address "Pratt St"   Search by address
  baltpermits recent --days 7               Permits from the last week
  baltpermits count "Council_District = 1"  Count matching permits
  baltpermits serve                         Start MCP server for IDE integration`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(countCmd)
	// versionCmd is registered in version.go
}

// newClient builds a permit client from environment configuration.
// Shared by every command that talks to the data source.
func newClient() (*permits.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	return permits.NewClient(
		permits.WithEndpoint(cfg.API.Endpoint),
		permits.WithTimeout(cfg.API.Timeout),
		permits.WithPageSize(cfg.API.PageSize),
		permits.WithLogger(log),
	), nil
}
