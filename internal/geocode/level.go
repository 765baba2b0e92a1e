package geocode

import "fmt"

// Level names an administrative level of the PSGC hierarchy.
type Level string

const (
	LevelIslandGroup      Level = "island-group"
	LevelRegion           Level = "region"
	LevelProvince         Level = "province"
	LevelDistrict         Level = "district"
	LevelCity             Level = "city"
	LevelMunicipality     Level = "municipality"
	LevelCityMunicipality Level = "city-municipality"
	LevelSubMunicipality  Level = "sub-municipality"
	LevelBarangay         Level = "barangay"
)

// Levels lists every level, root first.
var Levels = []Level{
	LevelIslandGroup,
	LevelRegion,
	LevelProvince,
	LevelDistrict,
	LevelCity,
	LevelMunicipality,
	LevelCityMunicipality,
	LevelSubMunicipality,
	LevelBarangay,
}

// String returns the level tag.
func (l Level) String() string {
	return string(l)
}

// Plural returns the path segment the dataset uses for the level.
func (l Level) Plural() string {
	switch l {
	case LevelIslandGroup:
		return "island-groups"
	case LevelRegion:
		return "regions"
	case LevelProvince:
		return "provinces"
	case LevelDistrict:
		return "districts"
	case LevelCity:
		return "cities"
	case LevelMunicipality:
		return "municipalities"
	case LevelCityMunicipality:
		return "cities-municipalities"
	case LevelSubMunicipality:
		return "sub-municipalities"
	case LevelBarangay:
		return "barangays"
	default:
		return ""
	}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l.Plural() != ""
}

// ParseLevel accepts a level tag or its plural path segment.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if s == string(l) || s == l.Plural() {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}
