// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the mediascore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Media Rating Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: build_rating ---
	s.AddTool(mcp.NewTool("build_rating",
		mcp.WithDescription("Rate media outlets on their coverage by evaluating a weighted rating tree over the analysed documents."),
		mcp.WithString("tree", mcp.Description("Built-in rating tree. Defaults to the configured tree."), mcp.Enum("children", "media-diversity")),
		mcp.WithString("start", mcp.Description("Start of the period (ISO8601 date or 'N [units] ago').")),
		mcp.WithString("end", mcp.Description("End of the period (ISO8601 date or 'N [units] ago').")),
		mcp.WithString("media", mcp.Description("Comma-separated outlet names to compare.")),
		mcp.WithBoolean("named_scores", mcp.Description("Include every Named Score value in the response.")),
	), h.handleBuildRating)

	// --- 2. Tool: get_source_trends ---
	s.AddTool(mcp.NewTool("get_source_trends",
		mcp.WithDescription("Find the most used source people, who is trending up or down, and their most repeated quotes."),
		mcp.WithString("start", mcp.Description("Start of the period (ISO8601 date or 'N [units] ago').")),
		mcp.WithString("end", mcp.Description("End of the period (ISO8601 date or 'N [units] ago').")),
		mcp.WithString("media", mcp.Description("Comma-separated outlet names.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of top people returned.")),
	), h.handleGetSourceTrends)

	// --- 3. Tool: list_rating_trees ---
	s.AddTool(mcp.NewTool("list_rating_trees",
		mcp.WithDescription("List the built-in rating trees with their weights and leaf scores."),
	), h.handleListRatingTrees)

	return s
}

// StartMCPServer starts the mediascore MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
