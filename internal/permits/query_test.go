package permits

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressQuery_UppercasesBothSides(t *testing.T) {
	q, err := AddressQuery("Pratt St", 0)

	require.NoError(t, err)
	assert.Equal(t, "UPPER(Address) LIKE '%PRATT ST%'", q.Where)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Empty(t, q.OrderBy)
}

func TestAddressQuery_EscapesQuotes(t *testing.T) {
	q, err := AddressQuery("O'Donnell", 0)

	require.NoError(t, err)
	assert.Equal(t, "UPPER(Address) LIKE '%O''DONNELL%'", q.Where)
}

func TestAddressQuery_EmptyAddress(t *testing.T) {
	_, err := AddressQuery("   ", 0)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddressQuery_LimitHandling(t *testing.T) {
	q, err := AddressQuery("Main", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, q.Limit)

	q, err = AddressQuery("Main", 5000)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, q.Limit)

	_, err = AddressQuery("Main", -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNeighborhoodQuery(t *testing.T) {
	q, err := NeighborhoodQuery("Fells Point", 0)

	require.NoError(t, err)
	assert.Equal(t, "UPPER(Neighborhood) LIKE '%FELLS POINT%'", q.Where)
	assert.Equal(t, DefaultLimit, q.Limit)

	_, err = NeighborhoodQuery("", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateRangeQuery_WholeOf2023(t *testing.T) {
	q, err := DateRangeQuery("2023-01-01", "2023-12-31", 0)

	require.NoError(t, err)
	// End date is inclusive of the whole day, so the upper bound is
	// midnight of the next day, exclusive.
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, fmt.Sprintf("IssuedDate >= %d AND IssuedDate < %d", start, end), q.Where)
	assert.Equal(t, int64(1672531200000), start)
	assert.Equal(t, int64(1704067200000), end)
}

func TestDateRangeQuery_SingleDayCoversWholeDay(t *testing.T) {
	q, err := DateRangeQuery("2024-06-15", "2024-06-15", 0)

	require.NoError(t, err)
	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, fmt.Sprintf("IssuedDate >= %d AND IssuedDate < %d", start, start+dayMillis), q.Where)
}

func TestDateRangeQuery_MalformedDates(t *testing.T) {
	_, err := DateRangeQuery("01/01/2023", "2023-12-31", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = DateRangeQuery("2023-01-01", "not-a-date", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDateRangeQuery_ReversedBounds(t *testing.T) {
	_, err := DateRangeQuery("2023-12-31", "2023-01-01", 0)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCaseNumberQuery(t *testing.T) {
	q, err := CaseNumberQuery("com2018-86246")

	require.NoError(t, err)
	assert.Equal(t, "UPPER(CaseNumber) = 'COM2018-86246'", q.Where)
	assert.Equal(t, 1, q.Limit)

	_, err = CaseNumberQuery("")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecentQuery(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	q, err := RecentQuery(7, 20, now)

	require.NoError(t, err)
	cutoff := now.UnixMilli() - 7*int64(dayMillis)
	assert.Equal(t, fmt.Sprintf("IssuedDate >= %d", cutoff), q.Where)
	assert.Equal(t, "IssuedDate DESC", q.OrderBy)
	assert.Equal(t, 20, q.Limit)
}

func TestRecentQuery_Defaults(t *testing.T) {
	now := time.Now()

	q, err := RecentQuery(0, 0, now)

	require.NoError(t, err)
	cutoff := now.UTC().UnixMilli() - DefaultRecentDays*int64(dayMillis)
	assert.Equal(t, fmt.Sprintf("IssuedDate >= %d", cutoff), q.Where)
	assert.Equal(t, DefaultLimit, q.Limit)
}

func TestRecentQuery_NegativeDays(t *testing.T) {
	_, err := RecentQuery(-3, 0, time.Now())

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCountQuery_PassesPredicateThrough(t *testing.T) {
	q, err := CountQuery("Council_District = 1 AND Cost > 10000")

	require.NoError(t, err)
	assert.Equal(t, "Council_District = 1 AND Cost > 10000", q.Where)
}

func TestCountQuery_EmptyClause(t *testing.T) {
	_, err := CountQuery("  ")

	assert.ErrorIs(t, err, ErrValidation)
}
