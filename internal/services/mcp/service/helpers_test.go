package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsLoopbackHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"127.0.0.1", true},
		{"::1", true},
		{" localhost ", true},
		{"example.com", false},
		{"127.0.0.2", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := isLoopbackHost(tt.host); got != tt.want {
				t.Errorf("isLoopbackHost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{"localhost:8081", "localhost", true},
		{"example.com:443", "example.com", true},
		{"[::1]:8081", "::1", true},
		{"[::1]", "::1", true},
		{"::1", "::1", true},
		{"example.com", "example.com", true},
		{"", "", false},
		{"  ", "", false},
		{"[::1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalizeHost(tt.input)
			if ok != tt.wantOk {
				t.Errorf("normalizeHost(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("normalizeHost(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAllowedHosts(t *testing.T) {
	hosts := parseAllowedHosts([]string{" Example.com ", "", "psgc.internal"})
	if len(hosts) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(hosts))
	}
	if _, ok := hosts["example.com"]; !ok {
		t.Error("expected example.com to be lowercased and trimmed")
	}
}

func TestIsAllowedHostHeader(t *testing.T) {
	transport := NewHTTPTransport("localhost:8081", nil, []string{"example.com"})

	tests := []struct {
		host string
		want bool
	}{
		{"localhost:8081", true},
		{"[::1]:8081", true},
		{"example.com:443", true},
		{"EXAMPLE.COM", true},
		{"evil.com:8081", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := transport.isAllowedHostHeader(tt.host); got != tt.want {
				t.Errorf("isAllowedHostHeader(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestValidateLocalRequest(t *testing.T) {
	transport := NewHTTPTransport("localhost:8081", nil, nil)

	t.Run("nil request", func(t *testing.T) {
		if err := transport.validateLocalRequest(nil); err == nil {
			t.Fatal("expected error")
		}
	})

	tests := []struct {
		name    string
		host    string
		origin  string
		wantErr bool
	}{
		{name: "loopback without origin", host: "localhost:8081"},
		{name: "loopback origin", host: "localhost:8081", origin: "http://127.0.0.1:3000"},
		{name: "foreign host", host: "evil.com", wantErr: true},
		{name: "foreign origin", host: "localhost:8081", origin: "http://evil.com", wantErr: true},
		{name: "malformed origin", host: "localhost:8081", origin: "::", wantErr: true},
		{name: "origin without host", host: "localhost:8081", origin: "file:///tmp/x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/mcp/health", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			err := transport.validateLocalRequest(req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateLocalRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
