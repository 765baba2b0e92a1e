package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/psgc-mcp/internal/hierarchy"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
	"github.com/louisbranch/psgc-mcp/internal/testkit/psgcfakes"
)

func testConfig() Config {
	cfg := Config{PSGC: psgc.DefaultConfig(), Output: FormatJSON}
	cfg.PSGC.RetryBaseDelay = 0
	cfg.Logging.Level = "info"
	return cfg
}

func runCLI(t *testing.T, cfg Config, transport *psgcfakes.Transport, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(cfg, Deps{Transport: transport, Logger: zap.NewNop()})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHierarchyCommand(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	out, err := runCLI(t, testConfig(), transport, "hierarchy", psgcfakes.BarangayCode)
	if err != nil {
		t.Fatalf("hierarchy: %v", err)
	}
	var got struct {
		Code       string `json:"code"`
		EntityType string `json:"entityType"`
		Levels     []struct {
			Type string `json:"type"`
		} `json:"levels"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if got.Code != psgcfakes.BarangayCode || got.EntityType != "barangay" {
		t.Fatalf("unexpected hierarchy header %+v", got)
	}
	var types []string
	for _, l := range got.Levels {
		types = append(types, l.Type)
	}
	want := "island-group,region,province,city-municipality,barangay"
	if strings.Join(types, ",") != want {
		t.Fatalf("expected levels %s, got %v", want, types)
	}
}

func TestHierarchyCommandInvalidCode(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	_, err := runCLI(t, testConfig(), transport, "hierarchy", "12345")
	if err == nil || !strings.Contains(err.Error(), "9 digits") {
		t.Fatalf("expected format error, got %v", err)
	}
	if transport.TotalCalls() != 0 {
		t.Fatalf("expected no upstream calls, got %d", transport.TotalCalls())
	}
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{name: "existing region", code: psgcfakes.RegionCode, valid: true},
		{name: "unknown region", code: "990000000", valid: false},
		{name: "malformed", code: "abc", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := psgcfakes.NewTransport(psgcfakes.Dataset())
			out, err := runCLI(t, testConfig(), transport, "validate", tt.code)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			var got hierarchy.Validation
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("decode output %q: %v", out, err)
			}
			if got.Valid != tt.valid || got.Code != tt.code {
				t.Fatalf("expected valid=%v for %s, got %+v", tt.valid, tt.code, got)
			}
		})
	}
}

func TestGetCommandYAML(t *testing.T) {
	cfg := testConfig()
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	out, err := runCLI(t, cfg, transport, "get", "provinces", psgcfakes.ProvinceCode, "-o", "yaml")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var got map[string]any
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode yaml %q: %v", out, err)
	}
	if got["code"] != psgcfakes.ProvinceCode || got["name"] != "Ilocos Norte" {
		t.Fatalf("unexpected province %v", got)
	}
}

func TestListAndChildrenCommands(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	out, err := runCLI(t, testConfig(), transport, "list", "regions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var regions []map[string]any
	if err := json.Unmarshal([]byte(out), &regions); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}

	out, err = runCLI(t, testConfig(), transport, "children", "region", psgcfakes.RegionCode, "provinces")
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	var provinces []map[string]any
	if err := json.Unmarshal([]byte(out), &provinces); err != nil {
		t.Fatalf("decode children: %v", err)
	}
	if len(provinces) != 1 || provinces[0]["code"] != psgcfakes.ProvinceCode {
		t.Fatalf("unexpected provinces %v", provinces)
	}
}

func TestSearchCommand(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	out, err := runCLI(t, testConfig(), transport, "search", "paranaque", "--type", "city")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var hits []psgc.SearchHit
	if err := json.Unmarshal([]byte(out), &hits); err != nil {
		t.Fatalf("decode hits: %v", err)
	}
	if len(hits) != 1 || hits[0].Code != "137604000" {
		t.Fatalf("unexpected hits %+v", hits)
	}
}

func TestUnknownLevel(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	_, err := runCLI(t, testConfig(), transport, "list", "counties")
	if err == nil || !strings.Contains(err.Error(), "unknown level") {
		t.Fatalf("expected unknown level error, got %v", err)
	}
}

func TestUnsupportedOutput(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	_, err := runCLI(t, testConfig(), transport, "list", "regions", "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Fatalf("expected output format error, got %v", err)
	}
	if transport.TotalCalls() != 0 {
		t.Fatalf("expected no upstream calls, got %d", transport.TotalCalls())
	}
}

func TestUpstreamErrorPropagates(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	cfg := testConfig()
	cfg.PSGC.MaxRetries = 0
	_, err := runCLI(t, cfg, transport, "get", "barangay", "999999999")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if !psgc.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCacheCommands(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	cfg := testConfig()

	out, err := runCLI(t, cfg, transport, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	if !strings.Contains(out, `"size": 0`) {
		t.Fatalf("expected empty stats, got %s", out)
	}

	out, err = runCLI(t, cfg, transport, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if strings.TrimSpace(out) != "Cache cleared successfully" {
		t.Fatalf("unexpected clear output %q", out)
	}

	out, err = runCLI(t, cfg, transport, "cache", "cleanup")
	if err != nil {
		t.Fatalf("cache cleanup: %v", err)
	}
	if !strings.Contains(out, `"removed": 0`) {
		t.Fatalf("unexpected cleanup output %q", out)
	}
}

func TestParseConfigReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PSGC_OUTPUT", "yaml")
	t.Setenv("PSGC_CACHE_BACKEND", "redis")
	cfg, err := ParseConfig()
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Output != FormatYAML || cfg.PSGC.CacheBackend != "redis" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.PSGC.BaseURL != psgc.DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.PSGC.BaseURL)
	}
}

func TestChildrenCommandRejectsUnsupportedScope(t *testing.T) {
	transport := psgcfakes.NewTransport(psgcfakes.Dataset())
	_, err := runCLI(t, testConfig(), transport, "children", "barangay", psgcfakes.BarangayCode, "regions")
	if err == nil || !strings.Contains(err.Error(), "a parent level with children") {
		t.Fatalf("expected scope error, got %v", err)
	}
	_, err = runCLI(t, testConfig(), transport, "children", "city", "012805000", "provinces")
	if err == nil || !strings.Contains(err.Error(), "want one of barangays") {
		t.Fatalf("expected child listing hint, got %v", err)
	}
	if transport.TotalCalls() != 0 {
		t.Fatalf("expected no upstream calls, got %d", transport.TotalCalls())
	}
}

func TestCompleteChildren(t *testing.T) {
	parents, _ := completeChildren(nil, nil, "")
	for _, p := range parents {
		if p == "barangay" {
			t.Fatal("barangay has no children and should not be suggested")
		}
	}
	if len(parents) != 8 {
		t.Fatalf("expected 8 parent levels, got %v", parents)
	}
	children, _ := completeChildren(nil, []string{"province", psgcfakes.ProvinceCode}, "")
	want := "cities,municipalities,cities-municipalities,sub-municipalities,barangays"
	if strings.Join(children, ",") != want {
		t.Fatalf("expected %s, got %v", want, children)
	}
}
