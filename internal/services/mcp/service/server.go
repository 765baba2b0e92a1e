package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/hierarchy"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/platform/metrics"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
	"github.com/louisbranch/psgc-mcp/internal/services/mcp/domain"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "psgc-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = psgc.Version
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP runs MCP over streamable HTTP for remote clients.
	TransportHTTP TransportKind = "http"
)

// DefaultHTTPAddr keeps the HTTP transport on loopback unless configured.
const DefaultHTTPAddr = "localhost:8081"

// Config configures how the MCP server is exposed.
type Config struct {
	Transport TransportKind
	HTTPAddr  string
	// AllowedHosts extends the loopback hosts accepted in Host and Origin
	// headers by the HTTP transport.
	AllowedHosts []string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	client    *psgc.Client
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls and transport events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithMetrics records tool calls and exposes /metrics on the HTTP
// transport.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates an MCP server exposing client.
func New(client *psgc.Client, opts ...Option) (*Server, error) {
	if client == nil {
		return nil, fmt.Errorf("psgc client is required")
	}
	server := &Server{client: client, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(server)
	}

	server.mcpServer = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions:       "Query the Philippine Standard Geographic Code: list and look up administrative areas, resolve the hierarchy of a code, validate codes and search by name.",
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	notify := func(ctx context.Context, uri string) {
		if strings.TrimSpace(uri) == "" {
			return
		}
		if err := server.mcpServer.ResourceUpdated(ctx, &mcp.ResourceUpdatedNotificationParams{URI: uri}); err != nil {
			server.logger.Warn("resource update notification failed", zap.String("uri", uri), zap.Error(err))
		}
	}

	deps := registrationDeps{
		client:    client,
		resolver:  hierarchy.NewResolver(client, hierarchy.WithLogger(server.logger)),
		validator: hierarchy.NewValidator(client, hierarchy.WithLogger(server.logger)),
		observer:  domain.Observer{Logger: server.logger, Metrics: server.metrics},
		notify:    notify,
	}
	for _, module := range newRegistrationModules(deps) {
		if err := module.register(mcpServerRegistrationAdapter{server: server.mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return server, nil
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// completionHandler answers completion requests for the entity resource
// template with the known level names.
func completionHandler(_ context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	values := []string{}
	if req != nil && req.Params != nil && req.Params.Argument.Name == "level" {
		values = completeLevel(req.Params.Argument.Value)
	}
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: values,
			Total:  len(values),
		},
	}, nil
}

// resourceSubscribeHandler accepts resource subscriptions with a valid URI.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// resourceUnsubscribeHandler accepts resource unsubscriptions with a valid URI.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}
