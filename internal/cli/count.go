package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baltpermits/internal/permits"
)

var countCmd = &cobra.Command{
	Use:   "count <where-clause>",
	Short: "Count permits matching a filter",
	Long: `Count permits matching a raw WHERE clause without fetching them.

The clause is handed to the data source's own filter parser unmodified.

Examples:
  baltpermits count "1=1"
  baltpermits count "Council_District = 1"
  baltpermits count "Address LIKE '%MAIN%'"`,
	Args: cobra.ExactArgs(1),
	Run:  runCount,
}

func runCount(cmd *cobra.Command, args []string) {
	q, err := permits.CountQuery(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, err := newClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	count, err := client.Count(context.Background(), q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d permit(s) match: %s\n", count, args[0])
}
