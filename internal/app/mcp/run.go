// Package mcp starts the PSGC MCP server from resolved configuration.
package mcp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appclient "github.com/louisbranch/psgc-mcp/internal/app/client"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/platform/metrics"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
	"github.com/louisbranch/psgc-mcp/internal/services/mcp/service"
)

// Options carries the resolved settings of an MCP run.
type Options struct {
	PSGC         psgc.Config
	Transport    string
	HTTPAddr     string
	AllowedHosts []string
	Logger       *zap.Logger
}

// ParseTransport maps a transport name to its kind.
func ParseTransport(transport string) (service.TransportKind, error) {
	switch transport {
	case "http":
		return service.TransportHTTP, nil
	case "stdio", "":
		return service.TransportStdio, nil
	default:
		return "", fmt.Errorf("invalid transport %q: must be 'stdio' or 'http'", transport)
	}
}

// Run builds the client and serves MCP until ctx ends.
func Run(ctx context.Context, opts Options) error {
	transportKind, err := ParseTransport(opts.Transport)
	if err != nil {
		return err
	}
	logger := logging.OrNop(opts.Logger)

	var m *metrics.Metrics
	if transportKind == service.TransportHTTP {
		m = metrics.New()
	}

	runtime, err := appclient.Open(ctx, opts.PSGC, nil, logger, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := runtime.Close(); err != nil {
			logger.Warn("close cache", zap.Error(err))
		}
	}()

	server, err := service.New(runtime.Client, service.WithLogger(logger), service.WithMetrics(m))
	if err != nil {
		return err
	}
	logger.Info("serving MCP", zap.String("transport", string(transportKind)))
	return server.Run(ctx, service.Config{
		Transport:    transportKind,
		HTTPAddr:     opts.HTTPAddr,
		AllowedHosts: opts.AllowedHosts,
	})
}
