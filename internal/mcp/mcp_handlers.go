package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/qlinetech/qgit/core"
	"github.com/qlinetech/qgit/core/rollup"
	"github.com/qlinetech/qgit/core/tree"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/schema"
)

// analyzeFunc runs a full analysis for cfg.
type analyzeFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Report, time.Duration, error)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	mgr       contract.CacheManager
	analyze   analyzeFunc
	newClient func(backend schema.GitBackend) contract.GitClient
}

// requestConfig clones the base config and points it at the requested repository.
func (h *toolHandler) requestConfig(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	p := request.GetString("repo_path", "")
	if p == "" {
		return cfg, nil
	}
	root, err := h.newClient(cfg.GitBackend).GetRepoRoot(ctx, p)
	if err != nil {
		return nil, err
	}
	cfg.RepoPath = root
	cfg.RepoName = filepath.Base(root)
	cfg.PathFilter = ""
	return cfg, nil
}

// withReport resolves the config, runs the analysis and renders the selected part as JSON.
func (h *toolHandler) withReport(ctx context.Context, request mcp.CallToolRequest, pick func(r *schema.Report, limit int) any) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}

	report, _, err := h.analyze(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(pick(report, request.GetInt("limit", 0)))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func headRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func (h *toolHandler) handleGetRepoInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.withReport(ctx, request, func(r *schema.Report, _ int) any {
		return r.Info
	})
}

func (h *toolHandler) handleGetFolderTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix := strings.Trim(request.GetString("path", ""), "/")
	return h.withReport(ctx, request, func(r *schema.Report, limit int) any {
		rows := tree.Rows(r.Tree)
		if prefix != "" {
			var scoped []schema.FolderRow
			for _, row := range rows {
				if row.Path == prefix || strings.HasPrefix(row.Path, prefix+"/") {
					scoped = append(scoped, row)
				}
			}
			rows = scoped
		}
		return headRows(rows, limit)
	})
}

func (h *toolHandler) handleGetLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.withReport(ctx, request, func(r *schema.Report, _ int) any {
		return r.Languages.Sorted()
	})
}

func (h *toolHandler) handleGetFrameworks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.withReport(ctx, request, func(r *schema.Report, _ int) any {
		return r.Frameworks
	})
}

func (h *toolHandler) handleGetContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.withReport(ctx, request, func(r *schema.Report, limit int) any {
		return headRows(rollup.Rows(r.Contributors), limit)
	})
}

func (h *toolHandler) handleGetTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.withReport(ctx, request, func(r *schema.Report, limit int) any {
		commits := r.Commits
		if limit > 0 && len(commits) > limit {
			commits = commits[len(commits)-limit:]
		}
		return commits
	})
}

func (h *toolHandler) handleGetUserContributions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author := request.GetString("author", "")
	if author == "" {
		return mcp.NewToolResultError("author is required"), nil
	}
	cfg, err := h.requestConfig(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repository: %v", err)), nil
	}
	cfg.Author = author
	cfg.UserRepos = nil

	result, err := core.GetUserResults(ctx, cfg, h.newClient(cfg.GitBackend))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("user rollup failed: %v", err)), nil
	}
	return jsonResult(result)
}
