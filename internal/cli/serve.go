package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baltpermits/internal/config"
	"baltpermits/internal/logger"
	"baltpermits/internal/mcp"
	"baltpermits/internal/permits"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for IDE integration",
	Long: `Start the MCP (Model Context Protocol) server.

This allows IDE agents like Claude Desktop, Cursor, or other
MCP-compatible tools to query Baltimore building permits.

The server communicates via stdio (standard input/output) using
JSON-RPC; logs go to stderr. Configuration comes from the environment:

  PERMITS_API_ENDPOINT  Permit layer query URL (defaults to the city's layer)
  PERMITS_HTTP_TIMEOUT  Per-request timeout in seconds (default 30)
  PERMITS_PAGE_SIZE     Rows per paginated request (default 1000)
  LOG_LEVEL             zerolog level (default info)`,
	Run: runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	client := permits.NewClient(
		permits.WithEndpoint(cfg.API.Endpoint),
		permits.WithTimeout(cfg.API.Timeout),
		permits.WithPageSize(cfg.API.PageSize),
		permits.WithLogger(log),
	)

	server := mcp.NewServer(client, mcp.WithLogger(log))

	log.Info().Str("endpoint", cfg.API.Endpoint).Msg("permit MCP server starting")

	// Blocks until stdin closes
	server.Run()
}
