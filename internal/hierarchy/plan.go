package hierarchy

import (
	"fmt"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

// FailurePolicy decides what a failed step does to the walk.
type FailurePolicy int

const (
	// Propagate aborts the walk and returns the error.
	Propagate FailurePolicy = iota
	// TruncateAndReturn stops the walk and returns the levels fetched so far.
	TruncateAndReturn
)

func (p FailurePolicy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case TruncateAndReturn:
		return "truncate"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// codeSource yields the code to fetch for a step from the requested code and
// the levels fetched so far (leaf first).
type codeSource func(code string, fetched []Level) (string, error)

// Step is one fetch of a walk plan.
type Step struct {
	Level  geocode.Level
	Policy FailurePolicy
	code   codeSource
}

// Plan is an ordered list of fetches, leaf first.
type Plan []Step

func requested(code string, _ []Level) (string, error) {
	return code, nil
}

func derived(derive func(string) string) codeSource {
	return func(code string, _ []Level) (string, error) {
		return derive(code), nil
	}
}

// islandGroupOfRegion reads the island group from the fetched region; it is
// not encoded in the numeric code.
func islandGroupOfRegion(_ string, fetched []Level) (string, error) {
	for i := len(fetched) - 1; i >= 0; i-- {
		if region, ok := fetched[i].Data.(psgc.Region); ok {
			if region.IslandGroupCode == "" {
				return "", fmt.Errorf("region %s has no island group", region.Code)
			}
			return region.IslandGroupCode, nil
		}
	}
	return "", fmt.Errorf("island group requires a fetched region")
}

// Plans maps each classification outcome to its walk.
var Plans = map[geocode.Level]Plan{
	geocode.LevelBarangay: {
		{Level: geocode.LevelBarangay, Policy: Propagate, code: requested},
		{Level: geocode.LevelCityMunicipality, Policy: TruncateAndReturn, code: derived(geocode.CityMunicipalityCodeOf)},
		{Level: geocode.LevelProvince, Policy: Propagate, code: derived(geocode.ProvinceCodeOf)},
		{Level: geocode.LevelRegion, Policy: Propagate, code: derived(geocode.RegionCodeOf)},
		{Level: geocode.LevelIslandGroup, Policy: Propagate, code: islandGroupOfRegion},
	},
	geocode.LevelCityMunicipality: {
		{Level: geocode.LevelCityMunicipality, Policy: Propagate, code: requested},
		{Level: geocode.LevelProvince, Policy: Propagate, code: derived(geocode.ProvinceCodeOf)},
		{Level: geocode.LevelRegion, Policy: Propagate, code: derived(geocode.RegionCodeOf)},
		{Level: geocode.LevelIslandGroup, Policy: Propagate, code: islandGroupOfRegion},
	},
	geocode.LevelProvince: {
		{Level: geocode.LevelProvince, Policy: Propagate, code: requested},
		{Level: geocode.LevelRegion, Policy: Propagate, code: derived(geocode.RegionCodeOf)},
		{Level: geocode.LevelIslandGroup, Policy: Propagate, code: islandGroupOfRegion},
	},
	geocode.LevelRegion: {
		{Level: geocode.LevelRegion, Policy: Propagate, code: requested},
		{Level: geocode.LevelIslandGroup, Policy: Propagate, code: islandGroupOfRegion},
	},
}
