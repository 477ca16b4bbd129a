// Package gateway assembles the MCP server surface: glossary resources and
// the Odoo query/mutation tools.
package gateway

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"odx/internal/buildinfo"
	"odx/internal/domain"
	"odx/internal/infra/telemetry"
)

// ConnectionInfo is what odx_config reports back to the client. The API key
// itself never leaves the process.
type ConnectionInfo struct {
	InstanceURL string `json:"instance_url"`
	GatewayURL  string `json:"gateway_url,omitempty"`
	Database    string `json:"database"`
	UserID      int    `json:"user_id"`
	APIKeySet   bool   `json:"api_key_set"`
}

// Server wraps an mcp.Server with the adapter's tools and resources.
type Server struct {
	mcpServer *mcp.Server
	client    domain.RemoteClient
	conn      ConnectionInfo
	logger    *zap.Logger
	metrics   *telemetry.Metrics
}

// Options configures the Server.
type Options struct {
	Client  domain.RemoteClient
	Conn    ConnectionInfo
	Logger  *zap.Logger
	Metrics *telemetry.Metrics
}

// New builds the MCP server and registers the tool surface. Resources are
// registered separately via Publish once the catalog is enriched.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "odx",
			Version: buildinfo.Version,
		}, &mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		}),
		client:  opts.Client,
		conn:    opts.Conn,
		logger:  logger.Named("gateway"),
		metrics: opts.Metrics,
	}
	s.registerTools()
	return s
}

// MCPServer exposes the underlying server for in-memory test sessions.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Run serves MCP over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
