package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"baltpermits/internal/permits"
)

var (
	searchAddress      string
	searchNeighborhood string
	searchCase         string
	searchFrom         string
	searchTo           string
	searchLimit        int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search building permits",
	Long: `Search Baltimore building permits and print matching records.

Pick exactly one search mode:
  --address        substring match on the permit address
  --neighborhood   substring match on the neighborhood name
  --case           exact case-number lookup
  --from/--to      permits issued in a date range (YYYY-MM-DD, inclusive)

Examples:
  baltpermits search --address "Pratt St"
  baltpermits search --neighborhood "Fells Point" --limit 10
  baltpermits search --case COM2018-86246
  baltpermits search --from 2023-01-01 --to 2023-12-31`,
	Run: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchAddress, "address", "", "Address or fragment to search for")
	searchCmd.Flags().StringVar(&searchNeighborhood, "neighborhood", "", "Neighborhood name or fragment")
	searchCmd.Flags().StringVar(&searchCase, "case", "", "Permit case number")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "Start of issue-date range (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "End of issue-date range (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (default 50, max 1000)")
}

func runSearch(cmd *cobra.Command, args []string) {
	q, err := buildSearchQuery()
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

	fmt.Printf("Found %d permit(s):\n", result.Total)
	for _, p := range result.Permits {
		fmt.Println(formatPermit(p))
	}
	if result.Note != "" {
		fmt.Printf("Note: %s\n", result.Note)
	}
}

func buildSearchQuery() (permits.Query, error) {
	modes := 0
	for _, set := range []bool{
		searchAddress != "",
		searchNeighborhood != "",
		searchCase != "",
		searchFrom != "" || searchTo != "",
	} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return permits.Query{}, fmt.Errorf("pick exactly one of --address, --neighborhood, --case, or --from/--to")
	}

	switch {
	case searchAddress != "":
		return permits.AddressQuery(searchAddress, searchLimit)
	case searchNeighborhood != "":
		return permits.NeighborhoodQuery(searchNeighborhood, searchLimit)
	case searchCase != "":
		return permits.CaseNumberQuery(searchCase)
	default:
		return permits.DateRangeQuery(searchFrom, searchTo, searchLimit)
	}
}
