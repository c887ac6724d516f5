package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/diffscope/internal/config"
	"github.com/tildaslashalef/diffscope/internal/loggy"
	"github.com/tildaslashalef/diffscope/internal/prompt"
	"github.com/tildaslashalef/diffscope/internal/review"
)

func newTestServer() *Server {
	cfg := &config.Config{
		Review: config.ReviewConfig{ContextLines: 3, MaxLineLength: 120},
	}
	templates := prompt.NewStore()
	reviews := review.NewService(nil, nil, templates, cfg, loggy.NewNoopLogger())
	return NewServer(config.ServerConfig{}, reviews, templates, "test", loggy.NewNoopLogger())
}

func callDispatch(t *testing.T, s *Server, method string, params any) jsonRPCResponse {
	t.Helper()

	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		require.NoError(t, err)
		raw = data
	}

	return s.dispatch(context.Background(), jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  raw,
	})
}

func TestDispatchInitialize(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "initialize", nil)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])
}

func TestDispatchToolsList(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "tools/list", nil)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]any)
	tools := result["tools"].([]map[string]any)

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool["name"].(string)
	}
	assert.Contains(t, names, "review_diff")
	assert.Contains(t, names, "get_template")
	assert.Contains(t, names, "list_templates")
}

func TestDispatchUnknownMethod(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "bogus/method", nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestToolReviewDiff(t *testing.T) {
	s := newTestServer()

	diffText := "diff --git a/a.js b/a.js\n" +
		"@@ -1,1 +1,2 @@\n" +
		" const a = 1;\n" +
		"+const apiKey = \"sk-live-1234\";\n"

	resp := callDispatch(t, s, "tools/call", map[string]any{
		"name":      "review_diff",
		"arguments": map[string]any{"diff": diffText},
	})
	require.Nil(t, resp.Error)

	rev, ok := resp.Result.(*review.Review)
	require.True(t, ok)
	assert.Equal(t, 1, rev.Result.FilesChanged)
	assert.NotEmpty(t, rev.Result.Issues)
}

func TestToolReviewDiffMissingDiff(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "tools/call", map[string]any{
		"name":      "review_diff",
		"arguments": map[string]any{},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestToolGetTemplate(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "tools/call", map[string]any{
		"name":      "get_template",
		"arguments": map[string]any{"name": "security"},
	})
	require.Nil(t, resp.Error)

	tmpl, ok := resp.Result.(prompt.Template)
	require.True(t, ok)
	assert.Equal(t, "security", tmpl.Name)
}

func TestToolGetTemplateUnknown(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "tools/call", map[string]any{
		"name":      "get_template",
		"arguments": map[string]any{"name": "missing"},
	})
	require.Nil(t, resp.Error)

	tmpl, ok := resp.Result.(prompt.Template)
	require.True(t, ok)
	assert.Equal(t, prompt.DefaultTemplate, tmpl.Name)
}

func TestListenAndServeRequiresAddr(t *testing.T) {
	s := newTestServer()

	err := s.ListenAndServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no listen address")
}

func TestToolCallUnknownTool(t *testing.T) {
	s := newTestServer()

	resp := callDispatch(t, s, "tools/call", map[string]any{
		"name":      "bogus_tool",
		"arguments": map[string]any{},
	})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}
