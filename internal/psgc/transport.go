package psgc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/psgc-mcp/internal/platform/timeouts"
)

// Version is reported in the User-Agent header.
const Version = "1.0.0"

const maxBodyBytes = 64 << 20

// Transport performs a single GET against the dataset. Implementations map
// failures to NotFoundError, ServerError or NetworkError.
type Transport interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// HTTPTransport is the production Transport.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport rooted at baseURL. timeout bounds a
// single attempt; non-positive values select the default.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = timeouts.UpstreamRequest
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return nil, NetworkError(path, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "psgc-mcp/"+Version)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, NetworkError(path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, NotFoundError(path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ServerError(path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, NetworkError(path, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}
