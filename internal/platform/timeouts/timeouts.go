// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// UpstreamRequest caps a single HTTP attempt against the PSGC dataset.
const UpstreamRequest = 30 * time.Second

// CacheBackendDial caps the wait when opening a remote cache backend.
const CacheBackendDial = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
