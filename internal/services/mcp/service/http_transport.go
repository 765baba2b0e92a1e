package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/platform/metrics"
	"github.com/louisbranch/psgc-mcp/internal/platform/timeouts"
)

var listenTCP = net.Listen

// HTTPTransport serves MCP over streamable HTTP at /mcp, with a health
// probe at /mcp/health and Prometheus metrics at /metrics.
type HTTPTransport struct {
	addr         string
	allowedHosts map[string]struct{}
	server       *mcp.Server
	metrics      *metrics.Metrics
	logger       *zap.Logger
	httpServer   *http.Server
}

// NewHTTPTransport creates a transport for server listening on addr.
func NewHTTPTransport(addr string, server *Server, allowedHosts []string) *HTTPTransport {
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	t := &HTTPTransport{
		addr:         addr,
		allowedHosts: parseAllowedHosts(allowedHosts),
		logger:       zap.NewNop(),
	}
	if server != nil {
		t.server = server.mcpServer
		t.metrics = server.metrics
		t.logger = logging.OrNop(server.logger)
	}
	return t
}

// Handler returns the HTTP routes of the transport.
func (t *HTTPTransport) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(t.requireLocalRequest)

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server
	}, nil)
	r.Handle("/mcp", mcpHandler)
	r.Get("/mcp/health", t.handleHealth)
	if t.metrics != nil {
		r.Method(http.MethodGet, "/metrics", t.metrics.Handler())
	}
	return r
}

// Start starts the HTTP server and blocks until ctx ends or the server
// fails.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t.server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	listener, err := listenTCP("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}

	t.httpServer = &http.Server{
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	t.logger.Info("starting MCP HTTP server", zap.String("addr", listener.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		if err := t.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		t.logger.Info("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := t.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

// handleHealth handles GET /mcp/health for health checks.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		t.logger.Debug("write health response", zap.Error(err))
	}
}
