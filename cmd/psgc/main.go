package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/psgc-mcp/internal/cmd/cli"
	"github.com/louisbranch/psgc-mcp/internal/platform/config"
)

// main runs the psgc command line.
func main() {
	cfg, err := cli.ParseConfig()
	if err != nil {
		config.Exitf("psgc: load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("psgc: %v", err)
	}
}
