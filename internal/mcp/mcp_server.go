// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/qlinetech/qgit/core"
	"github.com/qlinetech/qgit/internal/contract"
	"github.com/qlinetech/qgit/internal/gitclient"
)

// NewMCPServer initializes and configures the qgit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	h := &toolHandler{
		baseCfg:   baseCfg,
		mgr:       mgr,
		analyze:   core.GetReportResults,
		newClient: gitclient.New,
	}
	return newServer(h)
}

func newServer(h *toolHandler) *server.MCPServer {
	s := server.NewMCPServer(
		"qgit Repository Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	repoPath := mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository)."))
	limit := mcp.WithNumber("limit", mcp.Description("Limit the number of results returned."))

	s.AddTool(mcp.NewTool("get_repo_info",
		mcp.WithDescription("Summarize a repository: files, lines, commits, contributors and first/last commit dates."),
		repoPath,
	), h.handleGetRepoInfo)

	s.AddTool(mcp.NewTool("get_folder_tree",
		mcp.WithDescription("List folders and files with aggregated line and commit counts."),
		repoPath,
		mcp.WithString("path", mcp.Description("Only return entries under this folder.")),
		limit,
	), h.handleGetFolderTree)

	s.AddTool(mcp.NewTool("get_languages",
		mcp.WithDescription("Break down lines of code by language."),
		repoPath,
	), h.handleGetLanguages)

	s.AddTool(mcp.NewTool("get_frameworks",
		mcp.WithDescription("Detect frameworks from marker files such as package.json or go.mod."),
		repoPath,
	), h.handleGetFrameworks)

	s.AddTool(mcp.NewTool("get_contributors",
		mcp.WithDescription("Roll up commits and line changes per author, most active first."),
		repoPath,
		limit,
	), h.handleGetContributors)

	s.AddTool(mcp.NewTool("get_timeline",
		mcp.WithDescription("List commits oldest first. With a limit, only the most recent commits are returned."),
		repoPath,
		limit,
	), h.handleGetTimeline)

	s.AddTool(mcp.NewTool("get_user_contributions",
		mcp.WithDescription("Roll up one author's commits across the repository."),
		mcp.WithString("author", mcp.Description("Author name as recorded in commits."), mcp.Required()),
		repoPath,
	), h.handleGetUserContributions)

	return s
}

// StartMCPServer starts the qgit MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	contract.LogInfo("qgit MCP server serving %s on stdio", baseCfg.RepoName)
	return server.ServeStdio(s)
}
