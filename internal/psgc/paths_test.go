package psgc

import (
	"testing"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
)

func TestPaths(t *testing.T) {
	tests := []struct {
		name string
		got  func() (string, error)
		want string
	}{
		{
			name: "list island groups",
			got:  func() (string, error) { return ListPath(geocode.LevelIslandGroup) },
			want: "/island-groups.json",
		},
		{
			name: "list cities-municipalities",
			got:  func() (string, error) { return ListPath(geocode.LevelCityMunicipality) },
			want: "/cities-municipalities.json",
		},
		{
			name: "entity region",
			got:  func() (string, error) { return EntityPath(geocode.LevelRegion, "010000000") },
			want: "/regions/010000000.json",
		},
		{
			name: "entity island group",
			got:  func() (string, error) { return EntityPath(geocode.LevelIslandGroup, "luzon") },
			want: "/island-groups/luzon.json",
		},
		{
			name: "region provinces",
			got: func() (string, error) {
				return ChildrenPath(geocode.LevelRegion, "010000000", geocode.LevelProvince)
			},
			want: "/regions/010000000/provinces.json",
		},
		{
			name: "sub-municipality barangays",
			got: func() (string, error) {
				return ChildrenPath(geocode.LevelSubMunicipality, "133901000", geocode.LevelBarangay)
			},
			want: "/sub-municipalities/133901000/barangays.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChildrenPathRejectsUnknownScope(t *testing.T) {
	tests := []struct {
		parent geocode.Level
		child  geocode.Level
	}{
		{parent: geocode.LevelBarangay, child: geocode.LevelBarangay},
		{parent: geocode.LevelProvince, child: geocode.LevelRegion},
		{parent: geocode.LevelCity, child: geocode.LevelMunicipality},
		{parent: geocode.LevelProvince, child: geocode.LevelDistrict},
	}
	for _, tt := range tests {
		if _, err := ChildrenPath(tt.parent, "010000000", tt.child); err == nil {
			t.Errorf("expected %s under %s to be rejected", tt.child, tt.parent)
		}
	}
}

func TestChildScopeCount(t *testing.T) {
	total := 0
	for _, l := range geocode.Levels {
		total += len(ChildLevels(l))
	}
	if total != 29 {
		t.Fatalf("expected 29 scoped listings, got %d", total)
	}
}

func TestEntityPathRequiresCode(t *testing.T) {
	if _, err := EntityPath(geocode.LevelRegion, ""); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ListPath(geocode.Level("county")); err == nil {
		t.Fatal("expected unknown level error")
	}
}
