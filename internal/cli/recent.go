package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"baltpermits/internal/permits"
)

var (
	recentDays  int
	recentLimit int
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently issued permits",
	Long: `Show permits issued within the last N days, newest first.

Examples:
  baltpermits recent
  baltpermits recent --days 7 --limit 20`,
	Run: runRecent,
}

func init() {
	recentCmd.Flags().IntVar(&recentDays, "days", 0, "Days to look back (default 30)")
	recentCmd.Flags().IntVar(&recentLimit, "limit", 0, "Maximum results (default 50, max 1000)")
}

func runRecent(cmd *cobra.Command, args []string) {
	q, err := permits.RecentQuery(recentDays, recentLimit, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := client.Search(context.Background(), q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(result.Permits) == 0 {
		fmt.Println("No permits found.")
		return
	}

	fmt.Printf("Found %d recent permit(s):\n", result.Total)
	for _, p := range result.Permits {
		fmt.Println(formatPermit(p))
	}
	if result.Note != "" {
		fmt.Printf("Note: %s\n", result.Note)
	}
}
