package geocode

import (
	"errors"
	"fmt"
	"testing"

	apperrors "github.com/louisbranch/psgc-mcp/internal/platform/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want Level
	}{
		{code: "010000000", want: LevelRegion},
		{code: "130000000", want: LevelRegion},
		{code: "012801000", want: LevelCityMunicipality},
		{code: "012800000", want: LevelCityMunicipality},
		{code: "137404000", want: LevelCityMunicipality},
		{code: "012801001", want: LevelBarangay},
		{code: "137404023", want: LevelBarangay},
		{code: "000000001", want: LevelBarangay},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := Classify(tt.code)
			if err != nil {
				t.Fatalf("classify %s: %v", tt.code, err)
			}
			if got != tt.want {
				t.Fatalf("Classify(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

// Province-shaped codes share the region suffix, so the region rule always
// wins for them.
func TestClassifyRegionSuffixAlwaysWins(t *testing.T) {
	for prefix := 0; prefix < 1000; prefix++ {
		code := fmt.Sprintf("%03d000000", prefix)
		got, err := Classify(code)
		if err != nil {
			t.Fatalf("classify %s: %v", code, err)
		}
		if got != LevelRegion {
			t.Fatalf("Classify(%q) = %q, want region", code, got)
		}
	}
}

func TestClassifyInvalidFormat(t *testing.T) {
	tests := []string{
		"",
		"123",
		"01000000",
		"0100000000",
		"01000000a",
		"０10000000",
		" 10000000",
	}
	for _, code := range tests {
		t.Run(fmt.Sprintf("%q", code), func(t *testing.T) {
			_, err := Classify(code)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("expected invalid format, got %v", err)
			}
			if apperrors.CodeOf(err) != apperrors.CodeInvalidFormat {
				t.Fatalf("expected INVALID_FORMAT code, got %q", apperrors.CodeOf(err))
			}
		})
	}
}

func TestDerivations(t *testing.T) {
	code := "012801001"
	if got := CityMunicipalityCodeOf(code); got != "012801000" {
		t.Fatalf("city/municipality code = %q", got)
	}
	if got := ProvinceCodeOf(code); got != "012000000" {
		t.Fatalf("province code = %q", got)
	}
	if got := RegionCodeOf(code); got != "010000000" {
		t.Fatalf("region code = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, err := ParseLevel(l.String())
		if err != nil || got != l {
			t.Fatalf("ParseLevel(%q) = %q, %v", l, got, err)
		}
		got, err = ParseLevel(l.Plural())
		if err != nil || got != l {
			t.Fatalf("ParseLevel(%q) = %q, %v", l.Plural(), got, err)
		}
	}
	if _, err := ParseLevel("county"); err == nil {
		t.Fatal("expected unknown level error")
	}
}
