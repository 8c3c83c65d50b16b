// Package mcp exposes the analysis engine over the Model Context Protocol.
package mcp

import (
	"context"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmarket-tracker/internal/domain"
	"github.com/honeycarbs/jobmarket-tracker/internal/export"
	"github.com/honeycarbs/jobmarket-tracker/internal/mcp/tools"
	"github.com/honeycarbs/jobmarket-tracker/pkg/logging"
)

const (
	serverName    = "jobmarket-tracker"
	serverVersion = "0.2.0"
)

// Resources are the collaborators backing the tools. Only Analyzer is required.
type Resources struct {
	Analyzer       tools.Analyzer
	Ingester       tools.Ingester
	IngestDefaults domain.SearchQuery
	// OnIngest runs after an ingest that added postings
	OnIngest func(context.Context)
	Exporter tools.SheetExporter
	Sheets   export.SheetWriter
	Graph    tools.GraphReader
}

// Server is an MCP SDK server with every available tool registered
type Server struct {
	logger *logging.Logger
	server *sdkmcp.Server
	tools  []string
}

// NewServer registers the tools that res can back
func NewServer(log *logging.Logger, res Resources) *Server {
	if log == nil {
		log = logging.NewNop()
	}
	log = log.Named("mcp")

	impl := &sdkmcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}
	mcpServer := sdkmcp.NewServer(impl, nil)

	opts := []tools.Option{tools.WithReports(res.Analyzer)}
	if res.Ingester != nil {
		opts = append(opts, tools.WithJobIngest(res.Ingester, res.IngestDefaults, res.OnIngest))
	}
	if res.Exporter != nil && res.Sheets != nil {
		opts = append(opts, tools.WithSheetsExport(res.Exporter, res.Sheets))
	}
	if res.Graph != nil {
		opts = append(opts, tools.WithGraphTool(res.Graph))
	}
	names := tools.Register(mcpServer, log, opts...)

	return &Server{
		logger: log,
		server: mcpServer,
		tools:  names,
	}
}

// Handler serves the streamable HTTP transport
func (s *Server) Handler() http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return s.server
	}, nil)
}

// Tools lists the registered tool names in registration order
func (s *Server) Tools() []string {
	return s.tools
}

// Connect serves one session over t until the peer disconnects
func (s *Server) Connect(ctx context.Context, t sdkmcp.Transport) (*sdkmcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
