package psgc

import (
	"context"
	"fmt"

	"github.com/louisbranch/psgc-mcp/internal/cache"
	"github.com/louisbranch/psgc-mcp/internal/geocode"
)

// Client exposes the dataset endpoints as typed calls. All calls go through
// the fetcher cache.
type Client struct {
	fetcher *Fetcher
}

// NewClient creates a client over fetcher.
func NewClient(fetcher *Fetcher) *Client {
	return &Client{fetcher: fetcher}
}

// Fetcher returns the underlying fetcher.
func (c *Client) Fetcher() *Fetcher {
	return c.fetcher
}

// List returns every entity of level.
func List[T any](ctx context.Context, c *Client, level geocode.Level) ([]T, error) {
	path, err := ListPath(level)
	if err != nil {
		return nil, err
	}
	return Fetch[[]T](ctx, c.fetcher, path, true)
}

// Get returns one entity of level by code.
func Get[T any](ctx context.Context, c *Client, level geocode.Level, code string) (T, error) {
	path, err := EntityPath(level, code)
	if err != nil {
		var zero T
		return zero, err
	}
	return Fetch[T](ctx, c.fetcher, path, true)
}

// Children returns the child entities of level child under a parent.
func Children[T any](ctx context.Context, c *Client, parent geocode.Level, code string, child geocode.Level) ([]T, error) {
	path, err := ChildrenPath(parent, code, child)
	if err != nil {
		return nil, err
	}
	return Fetch[[]T](ctx, c.fetcher, path, true)
}

// Entity fetches one entity of level and returns it as its concrete type
// (Region, Province, Barangay, ...).
func (c *Client) Entity(ctx context.Context, level geocode.Level, code string) (any, error) {
	switch level {
	case geocode.LevelIslandGroup:
		return c.IslandGroup(ctx, code)
	case geocode.LevelRegion:
		return c.Region(ctx, code)
	case geocode.LevelProvince:
		return c.Province(ctx, code)
	case geocode.LevelDistrict:
		return Get[District](ctx, c, level, code)
	case geocode.LevelCity:
		return Get[City](ctx, c, level, code)
	case geocode.LevelMunicipality:
		return Get[Municipality](ctx, c, level, code)
	case geocode.LevelCityMunicipality:
		return c.CityMunicipality(ctx, code)
	case geocode.LevelSubMunicipality:
		return Get[SubMunicipality](ctx, c, level, code)
	case geocode.LevelBarangay:
		return c.Barangay(ctx, code)
	default:
		return nil, fmt.Errorf("unknown level %q", level)
	}
}

// IslandGroups lists luzon, visayas and mindanao.
func (c *Client) IslandGroups(ctx context.Context) ([]IslandGroup, error) {
	return List[IslandGroup](ctx, c, geocode.LevelIslandGroup)
}

// IslandGroup returns one island group.
func (c *Client) IslandGroup(ctx context.Context, code string) (IslandGroup, error) {
	return Get[IslandGroup](ctx, c, geocode.LevelIslandGroup, code)
}

// Regions lists every region.
func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	return List[Region](ctx, c, geocode.LevelRegion)
}

// Region returns one region.
func (c *Client) Region(ctx context.Context, code string) (Region, error) {
	return Get[Region](ctx, c, geocode.LevelRegion, code)
}

// Province returns one province.
func (c *Client) Province(ctx context.Context, code string) (Province, error) {
	return Get[Province](ctx, c, geocode.LevelProvince, code)
}

// CityMunicipality returns one city or municipality from the merged view.
func (c *Client) CityMunicipality(ctx context.Context, code string) (CityMunicipality, error) {
	return Get[CityMunicipality](ctx, c, geocode.LevelCityMunicipality, code)
}

// Barangay returns one barangay.
func (c *Client) Barangay(ctx context.Context, code string) (Barangay, error) {
	return Get[Barangay](ctx, c, geocode.LevelBarangay, code)
}

// ClearCache drops every cached response.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.fetcher.Cache().InvalidateAll(ctx)
}

// CleanupCache drops expired responses and reports how many were removed.
func (c *Client) CleanupCache(ctx context.Context) (int, error) {
	return c.fetcher.Cache().Cleanup(ctx)
}

// CacheStats reports the cached responses.
func (c *Client) CacheStats(ctx context.Context) (cache.Stats, error) {
	return c.fetcher.Cache().Stats(ctx)
}
