package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/llm"
	"github.com/ziadkadry99/nebula-docs/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation catalogue.
type Server struct {
	store  *content.Store
	client llm.ChatClient
	ask    assistant.AskConfig
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server. client may be nil, in which case
// ask_page reports that no provider is configured.
func NewServer(store *content.Store, client llm.ChatClient, ask assistant.AskConfig, logger *zap.Logger) *Server {
	s := &Server{
		store:  store,
		client: client,
		ask:    ask,
		logger: logging.OrNop(logger).Named("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"nebuladocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(askPageTool, s.handleAskPage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
