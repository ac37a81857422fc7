package types

// Location is a WGS84 coordinate pair attached to a permit when the
// upstream feature carries point geometry.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Permit is one building permit, flattened from the upstream feature's
// property bag. Date fields are ISO calendar dates (YYYY-MM-DD, UTC);
// the wire encoding is epoch milliseconds and is converted exactly once,
// at this boundary.
type Permit struct {
	CaseNumber           string    `json:"case_number"`
	Address              string    `json:"address"`
	Neighborhood         string    `json:"neighborhood"`
	IssuedDate           string    `json:"issued_date,omitempty"`
	ExpirationDate       string    `json:"expiration_date,omitempty"`
	Cost                 *float64  `json:"cost"`
	Description          string    `json:"description"`
	BlockLot             string    `json:"block_lot"`
	CouncilDistrict      int       `json:"council_district"`
	ExistingUse          *string   `json:"existing_use"`
	ProposedUse          *string   `json:"proposed_use"`
	IsPermitModification bool      `json:"is_permit_modification"`
	Location             *Location `json:"location"`
}

// SearchResult is the ordered result of one search operation. Truncated
// means more matching permits exist upstream than were fetched before
// the caller's limit was satisfied; Note carries the same fact as text
// for tool output.
type SearchResult struct {
	Permits   []Permit `json:"permits"`
	Total     int      `json:"total"`
	Truncated bool     `json:"truncated"`
	Note      string   `json:"note,omitempty"`
}
