package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// Resource URIs.
const (
	IslandGroupsResourceURI = "psgc://island-groups"
	CacheStatsResourceURI   = "psgc://cache/stats"
	EntityResourceTemplate  = "psgc://{level}/{code}"

	resourceScheme = "psgc://"
)

// ResourceUpdateNotifier notifies MCP clients about resource updates.
type ResourceUpdateNotifier func(ctx context.Context, uri string)

// NotifyResourceUpdates sends resource update notifications for each URI provided.
func NotifyResourceUpdates(ctx context.Context, notify ResourceUpdateNotifier, uris ...string) {
	if notify == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, uri := range uris {
		if strings.TrimSpace(uri) == "" {
			continue
		}
		notify(ctx, uri)
	}
}

// IslandGroupsResource defines the island group listing resource.
func IslandGroupsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "island_groups",
		Title:       "Island Groups",
		Description: "The three island groups at the root of the PSGC hierarchy",
		MIMEType:    "application/json",
		URI:         IslandGroupsResourceURI,
	}
}

// IslandGroupsResourceHandler reads the island group listing.
func IslandGroupsResourceHandler(client *psgc.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if client == nil {
			return nil, fmt.Errorf("psgc client is not configured")
		}
		groups, err := client.IslandGroups(ctx)
		if err != nil {
			return nil, fmt.Errorf("list island groups: %w", err)
		}
		return jsonResource(requestURI(req, IslandGroupsResourceURI), newListResult(groups))
	}
}

// CacheStatsResource defines the cache statistics resource.
func CacheStatsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "cache_stats",
		Title:       "Cache Statistics",
		Description: "Number of cached upstream responses and their keys",
		MIMEType:    "application/json",
		URI:         CacheStatsResourceURI,
	}
}

// CacheStatsResourceHandler reads cache statistics.
func CacheStatsResourceHandler(client *psgc.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if client == nil {
			return nil, fmt.Errorf("psgc client is not configured")
		}
		stats, err := client.CacheStats(ctx)
		if err != nil {
			return nil, fmt.Errorf("cache stats: %w", err)
		}
		return jsonResource(requestURI(req, CacheStatsResourceURI), stats)
	}
}

// EntityResourceTemplateDef defines the per-entity resource template.
func EntityResourceTemplateDef() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "psgc_entity",
		Title:       "PSGC Entity",
		Description: "One entity by level and code, e.g. psgc://region/130000000 or psgc://barangays/012801001",
		MIMEType:    "application/json",
		URITemplate: EntityResourceTemplate,
	}
}

// EntityResourceHandler reads one entity addressed as psgc://{level}/{code}.
func EntityResourceHandler(client *psgc.Client) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if client == nil {
			return nil, fmt.Errorf("psgc client is not configured")
		}
		uri := requestURI(req, "")
		if uri == "" {
			return nil, fmt.Errorf("resource uri is required; use psgc://{level}/{code}")
		}
		level, code, err := parseEntityURI(uri)
		if err != nil {
			return nil, fmt.Errorf("parse entity uri: %w", err)
		}
		entity, err := client.Entity(ctx, level, code)
		if err != nil {
			if psgc.IsNotFound(err) {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			return nil, fmt.Errorf("get %s %s: %w", humanize(string(level)), code, err)
		}
		return jsonResource(uri, entity)
	}
}

// parseEntityURI splits psgc://{level}/{code}. The level may be a tag or
// its plural.
func parseEntityURI(uri string) (geocode.Level, string, error) {
	rest, ok := strings.CutPrefix(uri, resourceScheme)
	if !ok {
		return "", "", fmt.Errorf("expected %s scheme in %q", resourceScheme, uri)
	}
	rawLevel, code, ok := strings.Cut(rest, "/")
	if !ok || strings.TrimSpace(code) == "" || strings.Contains(code, "/") {
		return "", "", fmt.Errorf("expected psgc://{level}/{code}, got %q", uri)
	}
	level, err := geocode.ParseLevel(rawLevel)
	if err != nil {
		return "", "", err
	}
	return level, code, nil
}

func requestURI(req *mcp.ReadResourceRequest, fallback string) string {
	if req != nil && req.Params != nil && req.Params.URI != "" {
		return req.Params.URI
	}
	return fallback
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
