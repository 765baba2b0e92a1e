// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"strings"

	mcpapp "github.com/louisbranch/psgc-mcp/internal/app/mcp"
	entrypoint "github.com/louisbranch/psgc-mcp/internal/platform/cmd"
	"github.com/louisbranch/psgc-mcp/internal/platform/logging"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// Config holds MCP command configuration.
type Config struct {
	PSGC    psgc.Config
	Logging logging.Config

	HTTPAddr     string   `env:"PSGC_MCP_HTTP_ADDR"     envDefault:"localhost:8081"`
	Transport    string   `env:"PSGC_MCP_TRANSPORT"     envDefault:"stdio"`
	AllowedHosts []string `env:"PSGC_MCP_ALLOWED_HOSTS" envSeparator:","`
}

// ParseConfig parses .env files, environment and flags into a Config.
// Flags win over the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	var allowedHosts string
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&allowedHosts, "allowed-hosts", strings.Join(cfg.AllowedHosts, ","), "Comma-separated hosts accepted besides loopback (HTTP transport)")
	fs.StringVar(&cfg.PSGC.BaseURL, "api-url", cfg.PSGC.BaseURL, "PSGC API base URL")
	fs.StringVar(&cfg.PSGC.CacheBackend, "cache", cfg.PSGC.CacheBackend, "Cache backend: memory, sqlite or redis")
	fs.DurationVar(&cfg.PSGC.CacheTTL, "cache-ttl", cfg.PSGC.CacheTTL, "Cache entry lifetime")
	fs.IntVar(&cfg.PSGC.MaxRetries, "max-retries", cfg.PSGC.MaxRetries, "Retries after the first failed upstream attempt")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.AllowedHosts = splitHosts(allowedHosts)
	return cfg, nil
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, host := range strings.Split(raw, ",") {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpapp.Run(ctx, mcpapp.Options{
			PSGC:         cfg.PSGC,
			Transport:    cfg.Transport,
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: cfg.AllowedHosts,
			Logger:       logger,
		})
	})
}
