package permits

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"baltpermits/pkg/types"
)

// DefaultEndpoint is Baltimore City's open building-permit layer.
const DefaultEndpoint = "https://egisdata.baltimorecity.gov/egis/rest/services/Housing/DHCD_Open_Baltimore_Datasets/FeatureServer/3/query"

const (
	defaultTimeout = 30 * time.Second
	// defaultPageSize matches the service's per-request row cap.
	defaultPageSize = 1000
	// maxPages bounds the pagination loop in case the upstream keeps
	// signaling exceededTransferLimit. With 1000-row pages this still
	// covers any limit a caller can request.
	maxPages = 50
)

// Client queries the permit FeatureServer layer. It holds no state
// between calls; concurrent use is safe.
type Client struct {
	endpoint string
	pageSize int
	http     *http.Client
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint points the client at a different query endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithPageSize sets the per-request row count used while paginating.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client against the Baltimore layer unless
// overridden by options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		pageSize: defaultPageSize,
		http:     &http.Client{Timeout: defaultTimeout},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// featureCollection is the upstream GeoJSON envelope. Count-only
// responses reuse the shape with the count either in properties or at
// the top level, depending on service version. Some failures come back
// as HTTP 200 with an error object instead of features.
type featureCollection struct {
	Type                  string           `json:"type"`
	Features              []feature        `json:"features"`
	ExceededTransferLimit bool             `json:"exceededTransferLimit"`
	Properties            *countProperties `json:"properties"`
	Count                 *int             `json:"count"`
	Error                 *upstreamError   `json:"error"`
}

type countProperties struct {
	Count int `json:"count"`
}

type upstreamError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type feature struct {
	Properties featureProperties `json:"properties"`
	Geometry   *geometry         `json:"geometry"`
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

// featureProperties mirrors the layer's attribute names, which follow
// the city's column naming rather than Go conventions.
type featureProperties struct {
	CaseNumber           string   `json:"CaseNumber"`
	Address              string   `json:"Address"`
	Neighborhood         string   `json:"Neighborhood"`
	IssuedDate           *int64   `json:"IssuedDate"`
	ExpirationDate       *int64   `json:"ExpirationDate"`
	Cost                 *float64 `json:"Cost"`
	Description          string   `json:"Description"`
	BlockLot             string   `json:"BLOCKLOT"`
	CouncilDistrict      int      `json:"Council_District"`
	ExistingUse          *string  `json:"ExistingUse"`
	ProposedUse          *string  `json:"ProposedUse"`
	IsPermitModification int      `json:"IsPermitModification"`
}

// Search runs q against the layer and returns up to q.Limit normalized
// permits, following the upstream truncation signal across pages. Pages
// are fetched strictly sequentially; each follow-up depends on the
// previous response.
func (c *Client) Search(ctx context.Context, q Query) (*types.SearchResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	permits := make([]types.Permit, 0, min(limit, c.pageSize))
	offset := 0
	truncated := false

	for page := 0; page < maxPages; page++ {
		batch := c.pageSize
		if remaining := limit - len(permits); remaining < batch {
			batch = remaining
		}

		env, err := c.fetch(ctx, q, &pageParams{offset: offset, count: batch})
		if err != nil {
			return nil, err
		}
		if env.Features == nil {
			return nil, fmt.Errorf("%w: response has no features array", ErrBadResponse)
		}

		n := len(env.Features)
		if n == 0 {
			truncated = false
			break
		}
		for i := 0; i < n && len(permits) < limit; i++ {
			permits = append(permits, flatten(env.Features[i]))
		}

		// Carry the page's truncation signal so an exit via the
		// maxPages bound still reports a partial result.
		truncated = env.ExceededTransferLimit

		if len(permits) >= limit {
			// Stopping because the caller is satisfied; note whether
			// the upstream still had more matching rows.
			truncated = truncated || len(permits) < offset+n
			break
		}
		if n < batch || !env.ExceededTransferLimit {
			break
		}
		offset += n
	}

	result := &types.SearchResult{
		Permits:   permits,
		Total:     len(permits),
		Truncated: truncated,
	}
	if truncated {
		result.Note = fmt.Sprintf("more matching permits exist upstream; returned the first %d", len(permits))
	}
	c.log.Debug().Str("where", q.Where).Int("returned", len(permits)).Bool("truncated", truncated).
		Msg("search complete")
	return result, nil
}

// Count asks the service for the number of rows matching q without
// fetching the rows themselves.
func (c *Client) Count(ctx context.Context, q Query) (int, error) {
	env, err := c.fetch(ctx, q, nil)
	if err != nil {
		return 0, err
	}
	if env.Properties != nil {
		return env.Properties.Count, nil
	}
	if env.Count != nil {
		return *env.Count, nil
	}
	return 0, fmt.Errorf("%w: count missing from response", ErrBadResponse)
}

// pageParams carries paging for record-returning requests; nil means a
// count-only request.
type pageParams struct {
	offset int
	count  int
}

func (c *Client) fetch(ctx context.Context, q Query, page *pageParams) (*featureCollection, error) {
	params := url.Values{}
	params.Set("where", q.Where)
	params.Set("outFields", "*")
	params.Set("f", "geojson")
	params.Set("returnGeometry", "true")
	if q.OrderBy != "" {
		params.Set("orderByFields", q.OrderBy)
	}
	if page == nil {
		params.Set("returnCountOnly", "true")
	} else {
		params.Set("resultOffset", strconv.Itoa(page.offset))
		params.Set("resultRecordCount", strconv.Itoa(page.count))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building permit request: %w", err)
	}

	evt := c.log.Debug().Str("where", q.Where)
	if page != nil {
		evt = evt.Int("offset", page.offset).Int("count", page.count)
	} else {
		evt = evt.Bool("count_only", true)
	}
	evt.Msg("querying permit layer")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var env featureCollection
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if env.Error != nil {
		// The service reports some failures in-band with HTTP 200.
		return nil, fmt.Errorf("%w: upstream error %d: %s", ErrUnavailable, env.Error.Code, env.Error.Message)
	}
	return &env, nil
}

// msToDate converts an epoch-millisecond timestamp to YYYY-MM-DD in UTC.
// All date arithmetic elsewhere stays in integer milliseconds; calendar
// form appears only here, at the output boundary.
func msToDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(dateLayout)
}

// flatten turns one upstream feature into a permit record. Missing
// geometry is not an error; Location stays nil.
func flatten(f feature) types.Permit {
	p := f.Properties
	permit := types.Permit{
		CaseNumber:           p.CaseNumber,
		Address:              p.Address,
		Neighborhood:         p.Neighborhood,
		Cost:                 p.Cost,
		Description:          p.Description,
		BlockLot:             p.BlockLot,
		CouncilDistrict:      p.CouncilDistrict,
		ExistingUse:          p.ExistingUse,
		ProposedUse:          p.ProposedUse,
		IsPermitModification: p.IsPermitModification != 0,
	}
	if p.IssuedDate != nil {
		permit.IssuedDate = msToDate(*p.IssuedDate)
	}
	if p.ExpirationDate != nil {
		permit.ExpirationDate = msToDate(*p.ExpirationDate)
	}
	if f.Geometry != nil && len(f.Geometry.Coordinates) >= 2 {
		permit.Location = &types.Location{
			Latitude:  f.Geometry.Coordinates[1],
			Longitude: f.Geometry.Coordinates[0],
		}
	}
	return permit
}
