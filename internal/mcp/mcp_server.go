// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the babscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"babscore Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: compute_chapter_metrics ---
	s.AddTool(mcp.NewTool("compute_chapter_metrics",
		mcp.WithDescription("Score every chapter (EOR, DK, IKK, KE) and rank them by one metric."),
		mcp.WithString("variant", mcp.Description("Formula variant. Defaults to the server configuration."), mcp.Enum("v1", "v2")),
		mcp.WithString("sort_by", mcp.Description("Metric used for ranking."), mcp.Enum("eor", "ikk", "ke", "dk")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of chapters returned.")),
	), h.handleComputeChapterMetrics)

	// --- 2. Tool: predict_duration ---
	s.AddTool(mcp.NewTool("predict_duration",
		mcp.WithDescription("Predict the completion time in weeks from the chapter percentages."),
		mcp.WithNumber("target", mcp.Description("Target percentage (80-100).")),
		mcp.WithNumber("realized", mcp.Description("Realized percentage (70-100).")),
		mcp.WithNumber("effectiveness", mcp.Description("Effectiveness percentage (70-100).")),
		mcp.WithNumber("complexity", mcp.Description("Complexity percentage (60-100).")),
		mcp.WithNumber("discipline", mcp.Description("Discipline percentage (70-100).")),
		mcp.WithString("features", mcp.Description("Predictor feature set."), mcp.Enum("full", "basic")),
	), h.handlePredictDuration)

	// --- 3. Tool: project_chapters ---
	s.AddTool(mcp.NewTool("project_chapters",
		mcp.WithDescription("Project the chapter metrics or the RCA factors onto two principal directions."),
		mcp.WithString("source", mcp.Description("Matrix to project."), mcp.Enum("chapters", "rca")),
		mcp.WithString("columns", mcp.Description("Comma separated chapter columns to project (e.g. 'eor,ikk,ke').")),
	), h.handleProjectChapters)

	// --- 4. Tool: compute_rca ---
	s.AddTool(mcp.NewTool("compute_rca",
		mcp.WithDescription("Compute the root cause aggregate and rank the remediation catalog by expected impact."),
		mcp.WithNumber("decay", mcp.Description("Time decay rate applied to every factor (>= 0).")),
	), h.handleComputeRCA)

	return s
}

// StartMCPServer starts the babscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
