package psgc

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
)

// Search limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// SearchLevels are the levels scanned by SearchByName, in scan order.
var SearchLevels = []geocode.Level{
	geocode.LevelRegion,
	geocode.LevelProvince,
	geocode.LevelCity,
	geocode.LevelMunicipality,
	geocode.LevelBarangay,
}

// SearchQuery selects entities whose name contains Name.
type SearchQuery struct {
	Name  string
	Type  geocode.Level
	Limit int
}

// SearchHit is one matching entity.
type SearchHit struct {
	Type   geocode.Level `json:"type"`
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Entity any           `json:"data"`
}

type named interface {
	Region | Province | City | Municipality | Barangay
}

// SearchByName returns entities whose name contains q.Name, ignoring case
// and diacritics. At most q.Limit hits are taken per level and overall.
func (c *Client) SearchByName(ctx context.Context, q SearchQuery) ([]SearchHit, error) {
	needle := foldName(q.Name)
	if needle == "" {
		return nil, fmt.Errorf("search name is required")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)

	levels := SearchLevels
	if q.Type != "" {
		if !isSearchLevel(q.Type) {
			return nil, fmt.Errorf("search is not supported for %s", q.Type)
		}
		levels = []geocode.Level{q.Type}
	}

	hits := []SearchHit{}
	for _, level := range levels {
		if len(hits) >= limit {
			break
		}
		var (
			found []SearchHit
			err   error
		)
		switch level {
		case geocode.LevelRegion:
			found, err = searchLevel[Region](ctx, c, level, needle, limit)
		case geocode.LevelProvince:
			found, err = searchLevel[Province](ctx, c, level, needle, limit)
		case geocode.LevelCity:
			found, err = searchLevel[City](ctx, c, level, needle, limit)
		case geocode.LevelMunicipality:
			found, err = searchLevel[Municipality](ctx, c, level, needle, limit)
		case geocode.LevelBarangay:
			found, err = searchLevel[Barangay](ctx, c, level, needle, limit)
		}
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", level.Plural(), err)
		}
		hits = append(hits, found...)
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func searchLevel[T named](ctx context.Context, c *Client, level geocode.Level, needle string, limit int) ([]SearchHit, error) {
	items, err := List[T](ctx, c, level)
	if err != nil {
		return nil, err
	}
	var hits []SearchHit
	for _, item := range items {
		code, name := identity(item)
		if !strings.Contains(foldName(name), needle) {
			continue
		}
		hits = append(hits, SearchHit{Type: level, Code: code, Name: name, Entity: item})
		if len(hits) >= limit {
			break
		}
	}
	return hits, nil
}

func identity(v any) (code, name string) {
	switch e := v.(type) {
	case Region:
		return e.Code, e.Name
	case Province:
		return e.Code, e.Name
	case City:
		return e.Code, e.Name
	case Municipality:
		return e.Code, e.Name
	case Barangay:
		return e.Code, e.Name
	default:
		return "", ""
	}
}

func isSearchLevel(level geocode.Level) bool {
	for _, l := range SearchLevels {
		if l == level {
			return true
		}
	}
	return false
}

// foldName lowercases s and strips combining marks, so "Parañaque"
// matches "paranaque".
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return cases.Fold().String(folded)
}
