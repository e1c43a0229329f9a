// Package mcp exposes the optimizer and history views as MCP tools over
// streamable HTTP.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/allocation-lab/internal/common"
	"github.com/bobmcallan/allocation-lab/internal/config"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	tools      int
}

// NewHandler creates a new MCP handler with the dashboard's tools registered.
func NewHandler(logger *common.Logger, d Deps) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"allocation-lab",
		config.CurrentBuild().Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	toolCount := RegisterTools(mcpSrv, d)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
		tools:      toolCount,
	}
}

// ToolCount returns the number of registered tools.
func (h *Handler) ToolCount() int {
	return h.tools
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	common.LoggerFromContext(r.Context(), h.logger).Debug().
		Str("method", r.Method).
		Msg("MCP request")
	h.streamable.ServeHTTP(w, r)
}
