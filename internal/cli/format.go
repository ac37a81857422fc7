package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"baltpermits/pkg/types"
)

const descriptionPreview = 200

// costPrinter renders dollar amounts with thousands separators.
var costPrinter = message.NewPrinter(language.English)

// formatPermit renders one permit as a readable text block for terminal
// output.
func formatPermit(p types.Permit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n  Permit: %s\n", orNA(p.CaseNumber))
	fmt.Fprintf(&b, "  Address: %s\n", orNA(p.Address))
	fmt.Fprintf(&b, "  Neighborhood: %s\n", orNA(p.Neighborhood))
	fmt.Fprintf(&b, "  Issued: %s\n", orNA(p.IssuedDate))
	fmt.Fprintf(&b, "  Expires: %s\n", orNA(p.ExpirationDate))

	cost := "N/A"
	if p.Cost != nil {
		cost = costPrinter.Sprintf("$%.0f", *p.Cost)
	}
	fmt.Fprintf(&b, "  Cost: %s\n", cost)

	desc := p.Description
	if len(desc) > descriptionPreview {
		desc = desc[:descriptionPreview] + "..."
	}
	fmt.Fprintf(&b, "  Description: %s\n", orNA(desc))
	fmt.Fprintf(&b, "  Block/Lot: %s\n", orNA(p.BlockLot))
	fmt.Fprintf(&b, "  Council District: %d\n", p.CouncilDistrict)
	fmt.Fprintf(&b, "  Existing Use: %s\n", orNAPtr(p.ExistingUse))
	fmt.Fprintf(&b, "  Proposed Use: %s\n", orNAPtr(p.ProposedUse))

	location := "N/A"
	if p.Location != nil {
		location = fmt.Sprintf("(%.6f, %.6f)", p.Location.Latitude, p.Location.Longitude)
	}
	fmt.Fprintf(&b, "  Location: %s\n", location)

	modification := "No"
	if p.IsPermitModification {
		modification = "Yes"
	}
	fmt.Fprintf(&b, "  Modification: %s\n", modification)
	b.WriteString("  ---")

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNAPtr(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}
