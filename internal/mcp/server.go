package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/p5embed/internal/config"
	"github.com/ziadkadry99/p5embed/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes sketch tools.
type Server struct {
	store store.Store
	cfg   *config.Config
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over the given sketch store. cfg
// supplies the public URL for embed code and the p5.js URL for previews.
func NewServer(st store.Store, cfg *config.Config) *Server {
	s := &Server{
		store: st,
		cfg:   cfg,
	}

	s.mcp = server.NewMCPServer(
		"p5embed",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(createSketchTool, s.handleCreateSketch)
	s.mcp.AddTool(getSketchTool, s.handleGetSketch)
	s.mcp.AddTool(listSketchesTool, s.handleListSketches)
	s.mcp.AddTool(embedCodeTool, s.handleEmbedCode)
	s.mcp.AddTool(renderPreviewTool, s.handleRenderPreview)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
