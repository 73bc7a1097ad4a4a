package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/qcresult/internal/application"
)

const (
	configURI  = "qcresult://config"
	historyURI = "qcresult://history"
)

// registerResources registers all qcresult MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc *application.ReportService) {
	// 1. qcresult://config - effective report config
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Report Config",
			mcplib.WithResourceDescription("Effective .qcresult.yaml settings for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, svc),
	)

	// 2. qcresult://history - recorded summaries
	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Report History",
			mcplib.WithResourceDescription("Summaries recorded with qcresult show --record"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath, svc),
	)
}

func handleConfigResource(projectPath string, svc *application.ReportService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.Config(projectPath, application.ReportOptions{})
		if err != nil {
			return nil, err
		}
		return jsonResource(configURI, cfg)
	}
}

func handleHistoryResource(projectPath string, svc *application.ReportService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := svc.History(projectPath)
		if err != nil {
			return nil, err
		}
		return jsonResource(historyURI, entries)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
