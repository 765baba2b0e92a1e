package psgcfakes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Server is an httptest server replaying a dataset fixture.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   map[string][]byte
	failures map[string][]int
	hits     map[string]int
	headers  http.Header
}

// NewServer starts a server for bodies and closes it when the test ends.
func NewServer(t testing.TB, bodies map[string]any) *Server {
	t.Helper()
	s := &Server{
		bodies:   make(map[string][]byte),
		failures: make(map[string][]int),
		hits:     make(map[string]int),
	}
	for path, body := range bodies {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode fixture %s: %v", path, err)
		}
		s.bodies[path] = data
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// FailWith makes the next len(statuses) requests for path answer with the
// given statuses.
func (s *Server) FailWith(path string, statuses ...int) {
	s.mu.Lock()
	s.failures[path] = append(s.failures[path], statuses...)
	s.mu.Unlock()
}

// Hits returns the number of requests served for path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers.Clone()
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	path := r.URL.Path
	s.hits[path]++
	s.headers = r.Header.Clone()
	var status int
	if pending := s.failures[path]; len(pending) > 0 {
		status = pending[0]
		s.failures[path] = pending[1:]
	}
	body, ok := s.bodies[path]
	s.mu.Unlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
