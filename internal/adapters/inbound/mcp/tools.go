package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/qcresult/internal/application"
	"github.com/abdidvp/qcresult/internal/domain"
)

// registerTools registers all qcresult MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc *application.ReportService) {
	// 1. qcresult_summary
	s.AddTool(
		mcplib.NewTool("qcresult_summary",
			mcplib.WithDescription("Returns the summary of a result document as JSON: counts per level, checkers and reported issues"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the .xqar result document, relative to the project"),
			),
			mcplib.WithString("min_level", mcplib.Description("Lowest level to report: error, warning or information")),
		),
		handleSummary(projectPath, svc),
	)

	// 2. qcresult_list_issues
	s.AddTool(
		mcplib.NewTool("qcresult_list_issues",
			mcplib.WithDescription("Lists the issues of a result document, optionally filtered by level or rule"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the .xqar result document, relative to the project"),
			),
			mcplib.WithString("level", mcplib.Description("Only issues of this level")),
			mcplib.WithString("rule", mcplib.Description("Only issues of this rule UID")),
			mcplib.WithBoolean("include_disabled", mcplib.Description("Also list issues disabled by .qcresult.yaml")),
		),
		handleListIssues(projectPath, svc),
	)

	// 3. qcresult_get_issue
	s.AddTool(
		mcplib.NewTool("qcresult_get_issue",
			mcplib.WithDescription("Returns one issue with its locations and domain-specific info"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the .xqar result document, relative to the project"),
			),
			mcplib.WithNumber("id",
				mcplib.Required(),
				mcplib.Description("Issue id"),
			),
		),
		handleGetIssue(projectPath, svc),
	)

	// 4. qcresult_validate
	s.AddTool(
		mcplib.NewTool("qcresult_validate",
			mcplib.WithDescription("Checks a result document and lists malformed issues"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the .xqar result document, relative to the project"),
			),
		),
		handleValidate(projectPath, svc),
	)
}

func handleSummary(projectPath string, svc *application.ReportService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var opts application.ReportOptions
		if s := request.GetString("min_level", ""); s != "" {
			lvl, err := domain.ParseIssueLevel(s)
			if err != nil {
				return errorResult(fmt.Sprintf("min_level: %v", err)), nil
			}
			opts.MinLevel = lvl
		}

		summary, err := svc.Summarize(resolve(projectPath, file), projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("summary failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleListIssues(projectPath string, svc *application.ReportService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var level domain.IssueLevel
		if s := request.GetString("level", ""); s != "" {
			if level, err = domain.ParseIssueLevel(s); err != nil {
				return errorResult(fmt.Sprintf("level: %v", err)), nil
			}
		}
		rule := request.GetString("rule", "")

		summary, err := svc.Summarize(resolve(projectPath, file), projectPath, application.ReportOptions{
			ShowDisabled: request.GetBool("include_disabled", false),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("listing failed: %v", err)), nil
		}

		issues := []domain.IssueView{}
		for _, v := range summary.Issues {
			if level != 0 && v.Level != level.String() {
				continue
			}
			if rule != "" && v.RuleUID != rule {
				continue
			}
			issues = append(issues, v)
		}
		return jsonResult(issues)
	}
}

func handleGetIssue(projectPath string, svc *application.ReportService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		id, err := request.RequireInt("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if id <= 0 {
			return errorResult(fmt.Sprintf("id must be positive, got %d", id)), nil
		}

		summary, err := svc.Summarize(resolve(projectPath, file), projectPath, application.ReportOptions{ShowDisabled: true})
		if err != nil {
			return errorResult(fmt.Sprintf("loading failed: %v", err)), nil
		}
		for _, v := range summary.Issues {
			if v.ID == uint64(id) {
				return jsonResult(v)
			}
		}
		return textResult(fmt.Sprintf("issue %d not found in %s", id, file)), nil
	}
}

func handleValidate(projectPath string, svc *application.ReportService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		v, err := svc.Validate(resolve(projectPath, file))
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(v)
	}
}

// resolve makes file relative to projectPath unless it is absolute.
func resolve(projectPath, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(projectPath, file)
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
