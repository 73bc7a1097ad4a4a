package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/qcresult/internal/application"
)

// NewQCResultMCPServer creates a new MCP server with all qcresult tools and
// resources registered. Relative result paths and the .qcresult.yaml lookup
// are resolved against projectPath.
func NewQCResultMCPServer(projectPath string, svc *application.ReportService) *server.MCPServer {
	s := server.NewMCPServer(
		"qcresult",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
