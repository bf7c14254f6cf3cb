package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/mediascore/core"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// ratingResponse is what build_rating returns.
type ratingResponse struct {
	schema.RatingResult
	Ranking []schema.RankedOutlet `json:"ranking"`
}

// requestConfig clones the base config and applies the common filter arguments.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	err := contract.RevalidateFilter(cfg,
		request.GetString("start", ""),
		request.GetString("end", ""),
		request.GetString("media", ""))
	return cfg, err
}

// failure turns an error into a tool result, keeping the no-documents case readable.
func failure(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, contract.ErrNoDocuments) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: no documents match the filter", action))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", action, err))
}

func (h *toolHandler) handleBuildRating(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rating parameters: %v", err)), nil
	}
	if t := request.GetString("tree", ""); t != "" {
		kind := schema.TreeKind(t)
		if _, ok := schema.ValidTreeKinds[kind]; !ok || kind == schema.CustomTree {
			return mcp.NewToolResultError(fmt.Sprintf("invalid rating parameters: unknown tree '%s'", t)), nil
		}
		cfg.Tree = kind
		cfg.TreeFile = ""
	}

	result, err := core.BuildRating(ctx, cfg, h.mgr.GetDocumentStore(), h.mgr.GetHistoryStore())
	if err != nil {
		return failure("rating failed", err), nil
	}
	if !request.GetBool("named_scores", false) {
		result.NamedScores = nil
	}

	jsonData, _ := json.MarshalIndent(ratingResponse{RatingResult: result, Ranking: schema.RankOutlets(result)}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSourceTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.TopPeople = l
	}

	report, err := core.BuildTrends(ctx, cfg, h.mgr.GetDocumentStore())
	if err != nil {
		return failure("trend analysis failed", err), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRatingTrees(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs, err := core.TreeDefinitions(nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing trees failed: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(defs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
