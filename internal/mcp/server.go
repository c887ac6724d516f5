// Package mcp exposes the review pipeline as JSON-RPC 2.0 tools over
// stdio or TCP, following the MCP tool conventions.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/tildaslashalef/diffscope/internal/config"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/prompt"
	"github.com/tildaslashalef/diffscope/internal/review"
	"github.com/tildaslashalef/diffscope/internal/ulid"
)

// ProtocolVersion is the MCP protocol revision this server speaks
const ProtocolVersion = "2024-11-05"

// Server serves review tools over JSON-RPC
type Server struct {
	reviews   *review.Service
	templates *prompt.Store
	cfg       config.ServerConfig
	logger    *loggy.Logger
	version   string

	ln     net.Listener
	mu     sync.Mutex
	closed bool
}

// NewServer creates a new tool server. The configured address is only
// used by ListenAndServe; ServeStdio ignores it.
func NewServer(cfg config.ServerConfig, reviews *review.Service, templates *prompt.Store, version string, logger *loggy.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 4 * 1024 * 1024
	}

	return &Server{
		reviews:   reviews,
		templates: templates,
		cfg:       cfg,
		logger:    logger,
		version:   version,
	}
}

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ListenAndServe accepts TCP connections and serves each one
func (s *Server) ListenAndServe() error {
	if s.cfg.Addr == "" {
		return fmt.Errorf("no listen address configured")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.logger.Info("tool server starting", "addr", s.cfg.Addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			s.logger.Error("accept error", "error", err)
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
	s.serve(conn, conn)
}

// ServeStdio serves a single session over the given reader and writer,
// typically stdin and stdout
func (s *Server) ServeStdio(r io.Reader, w io.Writer) error {
	s.serve(r, w)
	return nil
}

// Shutdown stops accepting connections
func (s *Server) Shutdown(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

func (s *Server) serve(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), s.cfg.MaxBodyBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(w, jsonRPCResponse{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   &rpcError{Code: -32700, Message: "parse error"},
			})
			continue
		}

		resp := s.dispatch(context.Background(), req)
		s.writeResponse(w, resp)
	}
}

func (s *Server) writeResponse(w io.Writer, resp jsonRPCResponse) {
	data, _ := json.Marshal(resp)
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) dispatch(ctx context.Context, req jsonRPCRequest) jsonRPCResponse {
	base := jsonRPCResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		base.Result = map[string]any{
			"protocolVersion": ProtocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{"listChanged": false}},
			"serverInfo":      map[string]any{"name": "diffscope", "version": s.version},
		}
		return base

	case "tools/list":
		base.Result = map[string]any{"tools": s.toolDefinitions()}
		return base

	case "tools/call":
		return s.handleToolCall(ctx, req, base)

	default:
		base.Error = &rpcError{Code: -32601, Message: fmt.Sprintf("method not found: %s", req.Method)}
		return base
	}
}

func (s *Server) toolDefinitions() []map[string]any {
	return []map[string]any{
		{
			"name":        "review_diff",
			"description": "Run the code review pipeline over a unified diff and return ranked issues",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"diff":       map[string]string{"type": "string", "description": "Unified diff text"},
					"extensions": map[string]any{"type": "array", "items": map[string]string{"type": "string"}},
					"exclude":    map[string]any{"type": "array", "items": map[string]string{"type": "string"}},
					"template":   map[string]string{"type": "string", "description": "Review template name"},
				},
				"required": []string{"diff"},
			},
		},
		{
			"name":        "get_template",
			"description": "Fetch a review template by name",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]string{"type": "string"},
				},
				"required": []string{"name"},
			},
		},
		{
			"name":        "list_templates",
			"description": "List all available review templates",
			"inputSchema": map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolCall(ctx context.Context, req jsonRPCRequest, base jsonRPCResponse) jsonRPCResponse {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		base.Error = &rpcError{Code: -32602, Message: "invalid params: " + err.Error()}
		return base
	}

	s.logger.Debug("tool call", "request_id", ulid.RequestID(), "tool", params.Name)

	switch params.Name {
	case "review_diff":
		return s.toolReviewDiff(ctx, params.Arguments, base)
	case "get_template":
		return s.toolGetTemplate(params.Arguments, base)
	case "list_templates":
		base.Result = map[string]any{"templates": s.templates.List()}
		return base
	default:
		base.Error = &rpcError{Code: -32602, Message: fmt.Sprintf("unknown tool: %s", params.Name)}
		return base
	}
}

type reviewDiffArgs struct {
	Diff       string   `json:"diff"`
	Extensions []string `json:"extensions,omitempty"`
	Exclude    []string `json:"exclude,omitempty"`
	Template   string   `json:"template,omitempty"`
}

func (s *Server) toolReviewDiff(ctx context.Context, raw json.RawMessage, base jsonRPCResponse) jsonRPCResponse {
	var args reviewDiffArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		base.Error = &rpcError{Code: -32602, Message: err.Error()}
		return base
	}
	if args.Diff == "" {
		base.Error = &rpcError{Code: -32602, Message: "diff is required"}
		return base
	}

	rev, err := s.reviews.ReviewText(ctx, args.Diff, review.Options{
		Extensions:      args.Extensions,
		ExcludePatterns: args.Exclude,
		Template:        args.Template,
	})
	if err != nil {
		base.Error = &rpcError{Code: -32603, Message: err.Error()}
		return base
	}

	base.Result = rev
	return base
}

type getTemplateArgs struct {
	Name string `json:"name"`
}

func (s *Server) toolGetTemplate(raw json.RawMessage, base jsonRPCResponse) jsonRPCResponse {
	var args getTemplateArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		base.Error = &rpcError{Code: -32602, Message: err.Error()}
		return base
	}

	// Unknown names fall back to the default template rather than erroring.
	base.Result = s.templates.Resolve(args.Name)
	return base
}
