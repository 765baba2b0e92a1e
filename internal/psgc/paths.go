package psgc

import (
	"fmt"
	"net/url"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
)

// childScopes lists, per parent level, the child listings the dataset
// serves under /<parent>/<code>/<child>.json.
var childScopes = map[geocode.Level][]geocode.Level{
	geocode.LevelIslandGroup: {
		geocode.LevelRegion,
		geocode.LevelProvince,
		geocode.LevelDistrict,
		geocode.LevelCity,
		geocode.LevelMunicipality,
		geocode.LevelCityMunicipality,
		geocode.LevelSubMunicipality,
		geocode.LevelBarangay,
	},
	geocode.LevelRegion: {
		geocode.LevelProvince,
		geocode.LevelDistrict,
		geocode.LevelCity,
		geocode.LevelMunicipality,
		geocode.LevelCityMunicipality,
		geocode.LevelSubMunicipality,
		geocode.LevelBarangay,
	},
	geocode.LevelProvince: {
		geocode.LevelCity,
		geocode.LevelMunicipality,
		geocode.LevelCityMunicipality,
		geocode.LevelSubMunicipality,
		geocode.LevelBarangay,
	},
	geocode.LevelDistrict: {
		geocode.LevelCity,
		geocode.LevelMunicipality,
		geocode.LevelCityMunicipality,
		geocode.LevelSubMunicipality,
		geocode.LevelBarangay,
	},
	geocode.LevelCity:             {geocode.LevelBarangay},
	geocode.LevelMunicipality:     {geocode.LevelBarangay},
	geocode.LevelSubMunicipality:  {geocode.LevelBarangay},
	geocode.LevelCityMunicipality: {geocode.LevelBarangay},
}

// ChildLevels returns the child listings available under parent.
func ChildLevels(parent geocode.Level) []geocode.Level {
	return childScopes[parent]
}

// HasChildScope reports whether the dataset serves child listings of
// child under parent.
func HasChildScope(parent, child geocode.Level) bool {
	for _, l := range childScopes[parent] {
		if l == child {
			return true
		}
	}
	return false
}

// ListPath returns /<plural>.json.
func ListPath(level geocode.Level) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("unknown level %q", level)
	}
	return "/" + level.Plural() + ".json", nil
}

// EntityPath returns /<plural>/<code>.json.
func EntityPath(level geocode.Level, code string) (string, error) {
	if !level.Valid() {
		return "", fmt.Errorf("unknown level %q", level)
	}
	if code == "" {
		return "", fmt.Errorf("%s code is required", level)
	}
	return "/" + level.Plural() + "/" + url.PathEscape(code) + ".json", nil
}

// ChildrenPath returns /<parent plural>/<code>/<child plural>.json.
func ChildrenPath(parent geocode.Level, code string, child geocode.Level) (string, error) {
	if !HasChildScope(parent, child) {
		return "", fmt.Errorf("%s listings are not available under %s", child.Plural(), parent)
	}
	if code == "" {
		return "", fmt.Errorf("%s code is required", parent)
	}
	return "/" + parent.Plural() + "/" + url.PathEscape(code) + "/" + child.Plural() + ".json", nil
}
