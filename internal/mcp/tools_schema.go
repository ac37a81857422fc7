package mcp

// handleToolsList returns the schema definitions for the six permit
// tools. This is called when the client requests "tools/list".

func (s *Server) handleToolsList(req *Request) {
	tools := []ToolInfo{
		{
			Name:        "search_permits_by_address",
			Description: "Search for building permits by address or address fragment. Matching is case-insensitive and substring-tolerant (e.g., '100 Main St' or just 'Main').",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"address": {Type: "string", Description: "Address or part of an address to search for"},
					"limit":   {Type: "integer", Description: "Maximum number of results (default 50, max 1000)"},
				},
				Required: []string{"address"},
			},
		},
		{
			Name:        "search_permits_by_date_range",
			Description: "Search for permits issued within a date range, both bounds inclusive. Dates must be YYYY-MM-DD.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"start_date": {Type: "string", Description: "Start date in YYYY-MM-DD format (e.g., '2024-01-01')"},
					"end_date":   {Type: "string", Description: "End date in YYYY-MM-DD format (e.g., '2024-12-31')"},
					"limit":      {Type: "integer", Description: "Maximum number of results (default 50, max 1000)"},
				},
				Required: []string{"start_date", "end_date"},
			},
		},
		{
			Name:        "search_permits_by_neighborhood",
			Description: "Search for permits in a specific neighborhood (e.g., 'Fells Point', 'Canton'). Matching is case-insensitive and substring-tolerant.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"neighborhood": {Type: "string", Description: "Neighborhood name or fragment"},
					"limit":        {Type: "integer", Description: "Maximum number of results (default 50, max 1000)"},
				},
				Required: []string{"neighborhood"},
			},
		},
		{
			Name:        "search_permits_by_case_number",
			Description: "Get a specific permit by case number (e.g., 'COM2018-86246'). Case numbers are unique; returns at most one permit.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"case_number": {Type: "string", Description: "Permit case number"},
				},
				Required: []string{"case_number"},
			},
		},
		{
			Name:        "get_recent_permits",
			Description: "Get recently issued permits, newest first.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"limit": {Type: "integer", Description: "Maximum number of results (default 50, max 1000)"},
					"days":  {Type: "integer", Description: "Number of days to look back (default 30)"},
				},
			},
		},
		{
			Name:        "count_permits",
			Description: "Count permits matching a raw WHERE clause (e.g., \"Address LIKE '%Main%'\", \"Council_District = 1\"). Useful for sizing a query before fetching details. The clause is passed to the data source's own parser unmodified.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"where_clause": {Type: "string", Description: "Filter predicate in the data source's SQL-like syntax"},
				},
				Required: []string{"where_clause"},
			},
		},
	}

	s.sendResult(req.ID, map[string]interface{}{
		"tools": tools,
	})
}
