package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"baltpermits/internal/permits"
	"baltpermits/pkg/types"
)

// Tool handlers. Each decodes its arguments, builds a query (all input
// validation happens there, before any network call), and runs it.

func (s *Server) handleSearchByAddress(params json.RawMessage) (interface{}, error) {
	var p struct {
		Address string `json:"address"`
		Limit   int    `json:"limit"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	q, err := permits.AddressQuery(p.Address, p.Limit)
	if err != nil {
		return nil, err
	}
	return s.client.Search(context.Background(), q)
}

func (s *Server) handleSearchByDateRange(params json.RawMessage) (interface{}, error) {
	var p struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Limit     int    `json:"limit"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	q, err := permits.DateRangeQuery(p.StartDate, p.EndDate, p.Limit)
	if err != nil {
		return nil, err
	}
	return s.client.Search(context.Background(), q)
}

func (s *Server) handleSearchByNeighborhood(params json.RawMessage) (interface{}, error) {
	var p struct {
		Neighborhood string `json:"neighborhood"`
		Limit        int    `json:"limit"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	q, err := permits.NeighborhoodQuery(p.Neighborhood, p.Limit)
	if err != nil {
		return nil, err
	}
	return s.client.Search(context.Background(), q)
}

func (s *Server) handleSearchByCaseNumber(params json.RawMessage) (interface{}, error) {
	var p struct {
		CaseNumber string `json:"case_number"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	q, err := permits.CaseNumberQuery(p.CaseNumber)
	if err != nil {
		return nil, err
	}

	result, err := s.client.Search(context.Background(), q)
	if err != nil {
		return nil, err
	}

	var permit *types.Permit
	if len(result.Permits) > 0 {
		permit = &result.Permits[0]
	}
	return map[string]interface{}{
		"permit": permit,
		"found":  permit != nil,
	}, nil
}

func (s *Server) handleGetRecentPermits(params json.RawMessage) (interface{}, error) {
	var p struct {
		Limit int `json:"limit"`
		Days  int `json:"days"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	q, err := permits.RecentQuery(p.Days, p.Limit, time.Now())
	if err != nil {
		return nil, err
	}
	return s.client.Search(context.Background(), q)
}

func (s *Server) handleCountPermits(params json.RawMessage) (interface{}, error) {
	var p struct {
		WhereClause string `json:"where_clause"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	q, err := permits.CountQuery(p.WhereClause)
	if err != nil {
		return nil, err
	}

	count, err := s.client.Count(context.Background(), q)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"count":        count,
		"where_clause": p.WhereClause,
	}, nil
}
