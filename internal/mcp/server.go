package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"baltpermits/internal/permits"
)

// Server is the MCP server. It speaks JSON-RPC over stdio: one request
// per line on stdin, one response per line on the output writer. All
// logging goes to the attached logger (stderr), never to the output
// stream.
type Server struct {
	client *permits.Client
	tools  map[string]ToolHandler
	out    io.Writer
	log    zerolog.Logger
}

// ToolHandler handles a tool call.
type ToolHandler func(params json.RawMessage) (interface{}, error)

// Request is a JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is a JSON-RPC error.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InitializeResult is the result of initialize.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// ServerInfo contains server information.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities contains server capabilities.
type Capabilities struct {
	Tools *ToolsCapability `json:"tools,omitempty"`
}

// ToolsCapability contains tools capability.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ToolInfo describes a tool.
type ToolInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema describes tool input.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a property.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithOutput redirects responses away from stdout.
func WithOutput(w io.Writer) ServerOption {
	return func(s *Server) { s.out = w }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

// NewServer creates an MCP server backed by the given permit client.
func NewServer(client *permits.Client, opts ...ServerOption) *Server {
	s := &Server{
		client: client,
		tools:  make(map[string]ToolHandler),
		out:    os.Stdout,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.tools["search_permits_by_address"] = s.handleSearchByAddress
	s.tools["search_permits_by_date_range"] = s.handleSearchByDateRange
	s.tools["search_permits_by_neighborhood"] = s.handleSearchByNeighborhood
	s.tools["search_permits_by_case_number"] = s.handleSearchByCaseNumber
	s.tools["get_recent_permits"] = s.handleGetRecentPermits
	s.tools["count_permits"] = s.handleCountPermits
}

// Run reads requests from stdin until it closes.
func (s *Server) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer size for large messages
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			// Don't send an error with a null ID - clients reject it
			s.log.Error().Err(err).Msg("parse error")
			continue
		}

		s.handleRequest(&req)
	}

	if err := scanner.Err(); err != nil {
		s.log.Error().Err(err).Msg("scanner error")
	}
}

// handleRequest dispatches a single JSON-RPC request.
func (s *Server) handleRequest(req *Request) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "initialized":
		// No response needed
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(req)
	default:
		s.sendError(req.ID, -32601, "Method not found", req.Method)
	}
}

func (s *Server) handleInitialize(req *Request) {
	result := InitializeResult{
		ProtocolVersion: "2024-11-05",
		ServerInfo: ServerInfo{
			Name:    "baltpermits",
			Version: "0.1.0",
		},
		Capabilities: Capabilities{
			Tools: &ToolsCapability{
				ListChanged: false,
			},
		},
	}
	s.sendResult(req.ID, result)
}

func (s *Server) handleToolsCall(req *Request) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.sendError(req.ID, -32602, "Invalid params", err.Error())
		return
	}

	handler, ok := s.tools[params.Name]
	if !ok {
		s.sendError(req.ID, -32601, "Tool not found", params.Name)
		return
	}

	requestID := uuid.NewString()
	log := s.log.With().Str("request_id", requestID).Str("tool", params.Name).Logger()
	log.Info().Msg("tool call")

	result, err := handler(params.Arguments)
	if err != nil {
		log.Warn().Err(err).Msg("tool call failed")
		s.sendResult(req.ID, map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": fmt.Sprintf("Error: %v", err),
				},
			},
			"isError": true,
		})
		return
	}

	resultJSON, _ := json.MarshalIndent(result, "", "  ")

	s.sendResult(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(resultJSON),
			},
		},
	})
}

func (s *Server) sendResult(id interface{}, result interface{}) {
	s.send(Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (s *Server) sendError(id interface{}, code int, message string, data interface{}) {
	// Don't send error responses for notifications (null/nil ID)
	if id == nil {
		s.log.Error().Str("message", message).Interface("data", data).Msg("error without request id")
		return
	}
	s.send(Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
}

func (s *Server) send(resp Response) {
	output, _ := json.Marshal(resp)
	fmt.Fprintln(s.out, string(output))
}
