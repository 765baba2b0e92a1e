package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// Cache tool names.
const (
	CacheStatsToolName   = "cache_stats"
	ClearCacheToolName   = "clear_cache"
	CleanupCacheToolName = "cleanup_cache"
)

// EmptyInput is the input of tools without arguments.
type EmptyInput struct{}

// CacheStatsResult represents the MCP tool output for cache statistics.
type CacheStatsResult struct {
	Size    int      `json:"size" jsonschema:"number of cached responses"`
	Entries []string `json:"entries" jsonschema:"cache keys"`
}

// ClearCacheResult represents the MCP tool output for a cache clear.
type ClearCacheResult struct {
	Message string `json:"message" jsonschema:"confirmation message"`
}

// CleanupCacheResult represents the MCP tool output for an expiry sweep.
type CleanupCacheResult struct {
	Removed int `json:"removed" jsonschema:"number of expired entries removed"`
}

// CacheStatsTool defines the cache statistics tool.
func CacheStatsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        CacheStatsToolName,
		Description: "Reports how many upstream responses are cached and their keys",
	}
}

// CacheStatsHandler reports cache statistics.
func CacheStatsHandler(client *psgc.Client) mcp.ToolHandlerFor[EmptyInput, CacheStatsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, CacheStatsResult, error) {
		stats, err := client.CacheStats(ctx)
		if err != nil {
			return nil, CacheStatsResult{}, fmt.Errorf("cache stats: %w", err)
		}
		keys := stats.Keys
		if keys == nil {
			keys = []string{}
		}
		return nil, CacheStatsResult{Size: stats.EntryCount, Entries: keys}, nil
	}
}

// ClearCacheTool defines the cache clear tool.
func ClearCacheTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ClearCacheToolName,
		Description: "Drops every cached upstream response",
	}
}

// ClearCacheHandler empties the cache.
func ClearCacheHandler(client *psgc.Client, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, ClearCacheResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, ClearCacheResult, error) {
		if err := client.ClearCache(ctx); err != nil {
			return nil, ClearCacheResult{}, fmt.Errorf("clear cache: %w", err)
		}
		NotifyResourceUpdates(ctx, notify, CacheStatsResourceURI)
		return nil, ClearCacheResult{Message: "Cache cleared successfully"}, nil
	}
}

// CleanupCacheTool defines the expiry sweep tool.
func CleanupCacheTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        CleanupCacheToolName,
		Description: "Removes expired cached responses",
	}
}

// CleanupCacheHandler removes expired entries.
func CleanupCacheHandler(client *psgc.Client, notify ResourceUpdateNotifier) mcp.ToolHandlerFor[EmptyInput, CleanupCacheResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, CleanupCacheResult, error) {
		removed, err := client.CleanupCache(ctx)
		if err != nil {
			return nil, CleanupCacheResult{}, fmt.Errorf("cleanup cache: %w", err)
		}
		if removed > 0 {
			NotifyResourceUpdates(ctx, notify, CacheStatsResourceURI)
		}
		return nil, CleanupCacheResult{Removed: removed}, nil
	}
}
