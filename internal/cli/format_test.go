package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"baltpermits/pkg/types"
)

func TestFormatPermit(t *testing.T) {
	cost := 125000.0
	use := "OFF"
	p := types.Permit{
		CaseNumber:           "COM2018-86246",
		Address:              "100 E PRATT ST",
		Neighborhood:         "Inner Harbor",
		IssuedDate:           "2023-01-01",
		ExpirationDate:       "2024-01-01",
		Cost:                 &cost,
		Description:          "Interior renovation",
		BlockLot:             "0655 001",
		CouncilDistrict:      11,
		ExistingUse:          &use,
		IsPermitModification: true,
		Location:             &types.Location{Latitude: 39.290386, Longitude: -76.609383},
	}

	out := formatPermit(p)

	assert.Contains(t, out, "Permit: COM2018-86246")
	assert.Contains(t, out, "Address: 100 E PRATT ST")
	assert.Contains(t, out, "Issued: 2023-01-01")
	assert.Contains(t, out, "Cost: $125,000")
	assert.Contains(t, out, "Council District: 11")
	assert.Contains(t, out, "Existing Use: OFF")
	assert.Contains(t, out, "Proposed Use: N/A")
	assert.Contains(t, out, "Location: (39.290386, -76.609383)")
	assert.Contains(t, out, "Modification: Yes")
}

func TestFormatPermit_GroupsCostThousands(t *testing.T) {
	cost := 1234567.0
	out := formatPermit(types.Permit{CaseNumber: "COM2022-1", Cost: &cost})

	assert.Contains(t, out, "Cost: $1,234,567")
}

func TestFormatPermit_MissingFields(t *testing.T) {
	out := formatPermit(types.Permit{CaseNumber: "USE2020-1"})

	assert.Contains(t, out, "Address: N/A")
	assert.Contains(t, out, "Cost: N/A")
	assert.Contains(t, out, "Location: N/A")
	assert.Contains(t, out, "Modification: No")
}

func TestFormatPermit_TruncatesLongDescriptions(t *testing.T) {
	p := types.Permit{
		CaseNumber:  "COM2021-1",
		Description: strings.Repeat("x", 500),
	}

	out := formatPermit(p)

	assert.Contains(t, out, strings.Repeat("x", descriptionPreview)+"...")
	assert.NotContains(t, out, strings.Repeat("x", descriptionPreview+1))
}
