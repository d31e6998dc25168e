package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// revalidate clones the base config and applies the tool arguments through the contract validators.
func (h *toolHandler) revalidate(apply func(input *contract.ConfigRawInput)) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	input := contract.RawInputFromConfig(cfg)
	apply(input)
	if err := contract.Revalidate(cfg, input); err != nil {
		return nil, err
	}
	return cfg, nil
}

// jsonResult marshals the payload into a text result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeChapterMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.revalidate(func(input *contract.ConfigRawInput) {
		if v := request.GetString("variant", ""); v != "" {
			input.Variant = v
			input.Features = ""
		}
		if s := request.GetString("sort_by", ""); s != "" {
			input.SortBy = s
		}
		if l := request.GetInt("limit", 0); l != 0 {
			input.Limit = l
		}
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chapter parameters: %v", err)), nil
	}

	ranked, err := core.GetChapterResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichChapters(ranked))
}

func (h *toolHandler) handlePredictDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.revalidate(func(input *contract.ConfigRawInput) {
		input.Target = request.GetFloat("target", input.Target)
		input.Realized = request.GetFloat("realized", input.Realized)
		input.Effectiveness = request.GetFloat("effectiveness", input.Effectiveness)
		input.Complexity = request.GetFloat("complexity", input.Complexity)
		input.Discipline = request.GetFloat("discipline", input.Discipline)
		if f := request.GetString("features", ""); f != "" {
			input.Features = f
		}
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid prediction inputs: %v", err)), nil
	}

	result, err := core.GetPrediction(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prediction failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleProjectChapters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.revalidate(func(input *contract.ConfigRawInput) {
		if s := request.GetString("source", ""); s != "" {
			input.Source = s
		}
		if c := strings.TrimSpace(request.GetString("columns", "")); c != "" {
			input.Columns = c
		}
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid projection parameters: %v", err)), nil
	}

	proj, err := core.GetProjection(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("projection failed: %v", err)), nil
	}
	return jsonResult(proj)
}

// rcaPayload is the JSON document returned by the compute_rca tool.
type rcaPayload struct {
	RCA       schema.RCAResult   `json:"rca"`
	Solutions []schema.EIAResult `json:"solutions"`
}

func (h *toolHandler) handleComputeRCA(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.revalidate(func(input *contract.ConfigRawInput) {
		input.Decay = request.GetFloat("decay", input.Decay)
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rca parameters: %v", err)), nil
	}

	result, solutions, err := core.GetRCAResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("root cause analysis failed: %v", err)), nil
	}
	return jsonResult(rcaPayload{RCA: result, Solutions: solutions})
}
