package mcp_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/mediascore/core/algo"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/docstore"
	"github.com/huangsam/mediascore/internal/history"
	mcp_internal "github.com/huangsam/mediascore/internal/mcp"
	"github.com/huangsam/mediascore/internal/stores"
	"github.com/huangsam/mediascore/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		Filter: schema.DocumentFilter{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
		},
		Tree:              schema.ChildrenTree,
		BucketLimit:       4,
		Decay:             algo.DefaultDecay,
		TrendUp:           algo.DefaultTrendUp,
		TrendDown:         algo.DefaultTrendDown,
		TopPeople:         contract.DefaultTopPeople,
		TrendLimit:        contract.DefaultTrendLimit,
		QuoteLimit:        contract.DefaultQuoteLimit,
		QuotesPerDocument: contract.DefaultQuotesPerDocument,
	}
}

func seededManager(t *testing.T) contract.StoreManager {
	t.Helper()
	docs, err := docstore.NewDocumentStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = docs.Close() })
	require.NoError(t, docs.Seed(context.Background(), docstore.SampleCorpus()))

	hist, err := history.NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	return stores.NewStoreManager(docs, hist)
}

func callTool(t *testing.T, mgr contract.StoreManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	// Validation fails before any store is touched
	var mgr contract.StoreManager

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{"build_rating bad start", "build_rating", map[string]any{"start": "whenever"}, "invalid start"},
		{"build_rating custom tree", "build_rating", map[string]any{"tree": "custom"}, "unknown tree"},
		{"build_rating reversed period", "build_rating", map[string]any{"start": "2025-03-01", "end": "2025-02-01"}, "cannot be after"},
		{"get_source_trends bad end", "get_source_trends", map[string]any{"end": "later"}, "invalid end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, mgr, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, text(res), tt.contains)
		})
	}
}

func TestMCPServerHandlers_BuildRating(t *testing.T) {
	mgr := seededManager(t)

	res := callTool(t, mgr, "build_rating", map[string]any{"tree": "media-diversity"})
	require.False(t, res.IsError, text(res))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(res)), &decoded))
	assert.Equal(t, "media-diversity", decoded["tree"])
	assert.NotContains(t, decoded, "named_scores")
	ranking, ok := decoded["ranking"].([]any)
	require.True(t, ok)
	assert.Len(t, ranking, 2)

	res = callTool(t, mgr, "build_rating", map[string]any{"named_scores": true})
	require.False(t, res.IsError, text(res))
	assert.Contains(t, text(res), `"named_scores"`)
}

func TestMCPServerHandlers_NoDocuments(t *testing.T) {
	mgr := seededManager(t)
	res := callTool(t, mgr, "get_source_trends", map[string]any{"media": "Unknown Gazette"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "no documents match the filter")
}

func TestMCPServerHandlers_SourceTrends(t *testing.T) {
	mgr := seededManager(t)
	res := callTool(t, mgr, "get_source_trends", map[string]any{"limit": 1.0})
	require.False(t, res.IsError, text(res))

	var report schema.TrendReport
	require.NoError(t, json.Unmarshal([]byte(text(res)), &report))
	assert.Len(t, report.TopPeople, 1)
}

func TestMCPServerHandlers_ListRatingTrees(t *testing.T) {
	res := callTool(t, nil, "list_rating_trees", nil)
	require.False(t, res.IsError)

	var defs []schema.TreeDefinition
	require.NoError(t, json.Unmarshal([]byte(text(res)), &defs))
	require.Len(t, defs, 2)
	assert.Equal(t, "children", defs[0].Name)
}
