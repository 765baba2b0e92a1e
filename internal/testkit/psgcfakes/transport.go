// Package psgcfakes provides configurable fakes of the PSGC dataset for
// tests.
package psgcfakes

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// Transport is a configurable fake psgc.Transport. Errors queued for a path
// are returned first, one per call; afterwards the configured body is
// returned, or NotFound when none is set. A call whose ctx has ended after
// Hook ran fails with a NetworkError.
type Transport struct {
	mu        sync.Mutex
	Responses map[string][]byte
	Errs      map[string][]error
	Calls     []string
	// Hook, when set, runs at the start of every call.
	Hook func(ctx context.Context, path string)
}

// NewTransport creates a fake serving bodies.
func NewTransport(bodies map[string]any) *Transport {
	t := &Transport{
		Responses: make(map[string][]byte),
		Errs:      make(map[string][]error),
	}
	for path, body := range bodies {
		t.SetJSON(path, body)
	}
	return t
}

// SetJSON serves body, encoded as JSON, for path.
func (t *Transport) SetJSON(path string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	t.mu.Lock()
	t.Responses[path] = data
	t.mu.Unlock()
}

// FailWith queues errs for path.
func (t *Transport) FailWith(path string, errs ...error) {
	t.mu.Lock()
	t.Errs[path] = append(t.Errs[path], errs...)
	t.mu.Unlock()
}

// Get records the call and returns the next configured outcome.
func (t *Transport) Get(ctx context.Context, path string) ([]byte, error) {
	if t.Hook != nil {
		t.Hook(ctx, path)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Calls = append(t.Calls, path)
	if err := ctx.Err(); err != nil {
		return nil, psgc.NetworkError(path, err)
	}
	if errs := t.Errs[path]; len(errs) > 0 {
		t.Errs[path] = errs[1:]
		return nil, errs[0]
	}
	body, ok := t.Responses[path]
	if !ok {
		return nil, psgc.NotFoundError(path)
	}
	return body, nil
}

// CallCount returns how many calls were made for path.
func (t *Transport) CallCount(path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, p := range t.Calls {
		if p == path {
			n++
		}
	}
	return n
}

// TotalCalls returns the number of calls across all paths.
func (t *Transport) TotalCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Calls)
}
