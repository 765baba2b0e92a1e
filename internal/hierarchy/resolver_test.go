package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/louisbranch/psgc-mcp/internal/geocode"
	"github.com/louisbranch/psgc-mcp/internal/psgc"
)

type fakeCall struct {
	Level geocode.Level
	Code  string
}

// fakeGetter serves entities keyed by level and code.
type fakeGetter struct {
	entities map[fakeCall]any
	errs     map[fakeCall]error
	calls    []fakeCall
}

func newFakeGetter() *fakeGetter {
	g := &fakeGetter{
		entities: make(map[fakeCall]any),
		errs:     make(map[fakeCall]error),
	}
	g.set(geocode.LevelIslandGroup, "luzon", psgc.IslandGroup{Code: "luzon", Name: "Luzon"})
	g.set(geocode.LevelRegion, "010000000", psgc.Region{Code: "010000000", Name: "Region I", IslandGroupCode: "luzon"})
	g.set(geocode.LevelProvince, "012000000", psgc.Province{Code: "012000000", Name: "Ilocos Norte", RegionCode: "010000000", IslandGroupCode: "luzon"})
	g.set(geocode.LevelCityMunicipality, "012801000", psgc.CityMunicipality{Code: "012801000", Name: "Adams", RegionCode: "010000000", IslandGroupCode: "luzon"})
	g.set(geocode.LevelBarangay, "012801001", psgc.Barangay{Code: "012801001", Name: "Adams (Pob.)", RegionCode: "010000000", IslandGroupCode: "luzon"})
	return g
}

func (g *fakeGetter) set(level geocode.Level, code string, entity any) {
	g.entities[fakeCall{Level: level, Code: code}] = entity
}

func (g *fakeGetter) fail(level geocode.Level, code string, err error) {
	g.errs[fakeCall{Level: level, Code: code}] = err
}

func (g *fakeGetter) Entity(_ context.Context, level geocode.Level, code string) (any, error) {
	call := fakeCall{Level: level, Code: code}
	g.calls = append(g.calls, call)
	if err, ok := g.errs[call]; ok {
		return nil, err
	}
	entity, ok := g.entities[call]
	if !ok {
		return nil, psgc.NotFoundError(fmt.Sprintf("/%s/%s.json", level.Plural(), code))
	}
	return entity, nil
}

func levelTypes(h Hierarchy) []geocode.Level {
	out := make([]geocode.Level, 0, len(h.Levels))
	for _, l := range h.Levels {
		out = append(out, l.Type)
	}
	return out
}

func TestResolveBarangayFullWalk(t *testing.T) {
	getter := newFakeGetter()
	resolver := NewResolver(getter)

	h, err := resolver.Resolve(context.Background(), "012801001")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []geocode.Level{
		geocode.LevelIslandGroup,
		geocode.LevelRegion,
		geocode.LevelProvince,
		geocode.LevelCityMunicipality,
		geocode.LevelBarangay,
	}
	if diff := cmp.Diff(want, levelTypes(h)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
	if h.EntityType != geocode.LevelBarangay || h.Truncated {
		t.Fatalf("unexpected hierarchy header %+v", h)
	}

	wantCalls := []fakeCall{
		{Level: geocode.LevelBarangay, Code: "012801001"},
		{Level: geocode.LevelCityMunicipality, Code: "012801000"},
		{Level: geocode.LevelProvince, Code: "012000000"},
		{Level: geocode.LevelRegion, Code: "010000000"},
		{Level: geocode.LevelIslandGroup, Code: "luzon"},
	}
	if diff := cmp.Diff(wantCalls, getter.calls); diff != "" {
		t.Fatalf("fetch order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveBarangayTruncatesOnCityMunicipalityFailure(t *testing.T) {
	getter := newFakeGetter()
	getter.fail(geocode.LevelCityMunicipality, "012801000", psgc.ServerError("/cities-municipalities/012801000.json", 503))
	resolver := NewResolver(getter)

	h, err := resolver.Resolve(context.Background(), "012801001")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]geocode.Level{geocode.LevelBarangay}, levelTypes(h)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
	if !h.Truncated {
		t.Fatal("expected truncated hierarchy")
	}
	if len(getter.calls) != 2 {
		t.Fatalf("expected walk to stop after 2 fetches, got %d", len(getter.calls))
	}
}

func TestResolveBarangayPropagatesLaterFailures(t *testing.T) {
	tests := []struct {
		name  string
		level geocode.Level
		code  string
	}{
		{name: "province", level: geocode.LevelProvince, code: "012000000"},
		{name: "region", level: geocode.LevelRegion, code: "010000000"},
		{name: "island group", level: geocode.LevelIslandGroup, code: "luzon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := newFakeGetter()
			boom := errors.New("boom")
			getter.fail(tt.level, tt.code, boom)

			_, err := NewResolver(getter).Resolve(context.Background(), "012801001")
			if !errors.Is(err, boom) {
				t.Fatalf("expected propagated error, got %v", err)
			}
		})
	}
}

func TestResolveBarangayPropagatesOwnFailure(t *testing.T) {
	getter := newFakeGetter()
	_, err := NewResolver(getter).Resolve(context.Background(), "012801999")
	if !psgc.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveCityMunicipalityHasNoTolerance(t *testing.T) {
	getter := newFakeGetter()
	resolver := NewResolver(getter)

	h, err := resolver.Resolve(context.Background(), "012801000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []geocode.Level{geocode.LevelIslandGroup, geocode.LevelRegion, geocode.LevelProvince, geocode.LevelCityMunicipality}
	if diff := cmp.Diff(want, levelTypes(h)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}

	getter = newFakeGetter()
	getter.fail(geocode.LevelProvince, "012000000", errors.New("boom"))
	if _, err := NewResolver(getter).Resolve(context.Background(), "012801000"); err == nil {
		t.Fatal("expected province failure to abort city/municipality walk")
	}
}

func TestResolveRegion(t *testing.T) {
	getter := newFakeGetter()
	h, err := NewResolver(getter).Resolve(context.Background(), "010000000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]geocode.Level{geocode.LevelIslandGroup, geocode.LevelRegion}, levelTypes(h)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
	group, ok := h.Levels[0].Data.(psgc.IslandGroup)
	if !ok || group.Code != "luzon" {
		t.Fatalf("expected luzon root, got %+v", h.Levels[0].Data)
	}
}

func TestResolveRegionWithoutIslandGroupFails(t *testing.T) {
	getter := newFakeGetter()
	getter.set(geocode.LevelRegion, "020000000", psgc.Region{Code: "020000000", Name: "Region II"})

	if _, err := NewResolver(getter).Resolve(context.Background(), "020000000"); err == nil {
		t.Fatal("expected error for region without island group")
	}
}

// The default classifier never yields a province; a stricter classifier
// can route codes to the province plan.
func TestResolveProvinceWithCustomClassifier(t *testing.T) {
	getter := newFakeGetter()
	classify := func(code string) (geocode.Level, error) {
		if code == "012000000" {
			return geocode.LevelProvince, nil
		}
		return geocode.Classify(code)
	}
	h, err := NewResolver(getter, WithClassifier(classify)).Resolve(context.Background(), "012000000")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []geocode.Level{geocode.LevelIslandGroup, geocode.LevelRegion, geocode.LevelProvince}
	if diff := cmp.Diff(want, levelTypes(h)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveInvalidFormatFetchesNothing(t *testing.T) {
	getter := newFakeGetter()
	_, err := NewResolver(getter).Resolve(context.Background(), "12345")
	if !errors.Is(err, geocode.ErrInvalidFormat) {
		t.Fatalf("expected invalid format, got %v", err)
	}
	if len(getter.calls) != 0 {
		t.Fatalf("expected no fetches, got %d", len(getter.calls))
	}
}

func TestPlansTruncateOnlyAtBarangayCityMunicipalityStep(t *testing.T) {
	for level, plan := range Plans {
		for i, step := range plan {
			truncates := step.Policy == TruncateAndReturn
			want := level == geocode.LevelBarangay && step.Level == geocode.LevelCityMunicipality
			if truncates != want {
				t.Errorf("%s plan step %d (%s): policy %s", level, i, step.Level, step.Policy)
			}
		}
	}
}
