package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// SearchToolName is the name search tool.
const SearchToolName = "search_by_name"

// SearchInput represents the MCP tool input for name search.
type SearchInput struct {
	Name  string `json:"name" jsonschema:"name or part of a name; case and diacritics are ignored"`
	Type  string `json:"type,omitempty" jsonschema:"optional level to search: region, province, city, municipality or barangay"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10, max 100)"`
}

// SearchResult represents the MCP tool output for name search.
type SearchResult struct {
	Query   string           `json:"query" jsonschema:"searched name"`
	Results []psgc.SearchHit `json:"results" jsonschema:"matching entities"`
	Count   int              `json:"count" jsonschema:"number of results"`
}

// SearchTool defines the name search tool.
func SearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        SearchToolName,
		Description: "Searches regions, provinces, cities, municipalities and barangays by name",
	}
}

// SearchHandler runs a name search.
func SearchHandler(client *psgc.Client) mcp.ToolHandlerFor[SearchInput, SearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchResult, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, SearchResult{}, fmt.Errorf("name is required")
		}
		if input.Limit < 0 {
			return nil, SearchResult{}, fmt.Errorf("limit must not be negative")
		}

		query := psgc.SearchQuery{Name: name, Limit: input.Limit}
		if t := strings.TrimSpace(input.Type); t != "" {
			level, err := geocode.ParseLevel(t)
			if err != nil {
				return nil, SearchResult{}, err
			}
			query.Type = level
		}

		hits, err := client.SearchByName(ctx, query)
		if err != nil {
			return nil, SearchResult{}, fmt.Errorf("search %q: %w", name, err)
		}
		if hits == nil {
			hits = []psgc.SearchHit{}
		}
		return nil, SearchResult{Query: name, Results: hits, Count: len(hits)}, nil
	}
}
