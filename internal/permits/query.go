package permits

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultLimit is applied when a caller leaves limit unset.
	DefaultLimit = 50
	// MaxLimit caps any single search; requests above it are clamped.
	MaxLimit = 1000
	// DefaultRecentDays is the lookback window for recent-permit queries.
	DefaultRecentDays = 30

	dateLayout = "2006-01-02"
	dayMillis  = 24 * 60 * 60 * 1000
)

// Query carries everything one upstream request sequence needs: the
// WHERE predicate in the service's filter grammar, an optional ordering,
// and the total number of records the caller wants back. A Query is
// built once and shared across all pages of a paginated fetch.
type Query struct {
	Where   string
	OrderBy string
	Limit   int
}

// escapeLiteral doubles single quotes so free-text input can be embedded
// in a predicate string literal.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// normalizeLimit applies the default and the upper cap. Zero means the
// caller left it unset; negative values are rejected.
func normalizeLimit(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultLimit, nil
	case limit < 0:
		return 0, validationf("limit must be positive, got %d", limit)
	case limit > MaxLimit:
		return MaxLimit, nil
	default:
		return limit, nil
	}
}

// containsQuery builds a case-insensitive substring predicate on col.
// The dataset's casing is inconsistent, so both the column and the
// literal are uppercased instead of relying on upstream collation.
func containsQuery(col, value string) string {
	return fmt.Sprintf("UPPER(%s) LIKE '%%%s%%'", col, strings.ToUpper(escapeLiteral(value)))
}

// AddressQuery matches permits whose address contains the fragment,
// case-insensitively.
func AddressQuery(address string, limit int) (Query, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Query{}, validationf("address is required")
	}
	lim, err := normalizeLimit(limit)
	if err != nil {
		return Query{}, err
	}
	return Query{Where: containsQuery("Address", address), Limit: lim}, nil
}

// NeighborhoodQuery matches permits whose neighborhood name contains the
// fragment, case-insensitively.
func NeighborhoodQuery(neighborhood string, limit int) (Query, error) {
	neighborhood = strings.TrimSpace(neighborhood)
	if neighborhood == "" {
		return Query{}, validationf("neighborhood is required")
	}
	lim, err := normalizeLimit(limit)
	if err != nil {
		return Query{}, err
	}
	return Query{Where: containsQuery("Neighborhood", neighborhood), Limit: lim}, nil
}

// DateRangeQuery matches permits issued between startDate and endDate
// inclusive (YYYY-MM-DD). Bounds are converted to epoch milliseconds at
// UTC midnight; the upper bound is exclusive start-of-next-day so the
// whole end date is covered. The dataset stores dates as integer
// milliseconds, so ISO string literals would not compare correctly.
func DateRangeQuery(startDate, endDate string, limit int) (Query, error) {
	lim, err := normalizeLimit(limit)
	if err != nil {
		return Query{}, err
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return Query{}, validationf("start_date %q is not a valid YYYY-MM-DD date", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return Query{}, validationf("end_date %q is not a valid YYYY-MM-DD date", endDate)
	}
	if end.Before(start) {
		return Query{}, validationf("start_date %s is after end_date %s", startDate, endDate)
	}
	startMs := start.UnixMilli()
	endMs := end.AddDate(0, 0, 1).UnixMilli()
	return Query{
		Where: fmt.Sprintf("IssuedDate >= %d AND IssuedDate < %d", startMs, endMs),
		Limit: lim,
	}, nil
}

// CaseNumberQuery looks up a single permit by its case number, exact but
// case-insensitive. Case numbers are unique upstream, so at most one
// record comes back.
func CaseNumberQuery(caseNumber string) (Query, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	if caseNumber == "" {
		return Query{}, validationf("case_number is required")
	}
	return Query{
		Where: fmt.Sprintf("UPPER(CaseNumber) = '%s'", strings.ToUpper(escapeLiteral(caseNumber))),
		Limit: 1,
	}, nil
}

// RecentQuery matches permits issued within the last days days of now,
// newest first. Ordering is requested server-side so the first page
// already holds the most recent permits.
func RecentQuery(days, limit int, now time.Time) (Query, error) {
	if days == 0 {
		days = DefaultRecentDays
	}
	if days < 0 {
		return Query{}, validationf("days must be positive, got %d", days)
	}
	lim, err := normalizeLimit(limit)
	if err != nil {
		return Query{}, err
	}
	cutoff := now.UTC().UnixMilli() - int64(days)*dayMillis
	return Query{
		Where:   fmt.Sprintf("IssuedDate >= %d", cutoff),
		OrderBy: "IssuedDate DESC",
		Limit:   lim,
	}, nil
}

// CountQuery passes the caller's predicate through untouched. The
// upstream layer is public and read-only; its own parser is the only
// validation applied to the filter syntax.
func CountQuery(whereClause string) (Query, error) {
	if strings.TrimSpace(whereClause) == "" {
		return Query{}, validationf("where_clause is required")
	}
	return Query{Where: whereClause}, nil
}
