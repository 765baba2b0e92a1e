package geocode

import (
	apperrors "github.com/louisbranch/psgc-mcp/internal/platform/errors"
)

// CodeLength is the length of every PSGC code.
const CodeLength = 9

// ErrInvalidFormat is matched (via errors.Is) by every classification
// failure.
var ErrInvalidFormat = apperrors.New(apperrors.CodeInvalidFormat, "invalid code format")

// Classify returns the level implied by the code's trailing zero groups.
//
// Only Region, Province, CityMunicipality and Barangay are ever returned.
// Codes that are not exactly nine ASCII digits fail with ErrInvalidFormat.
func Classify(code string) (Level, error) {
	if !WellFormed(code) {
		return "", apperrors.WithMetadata(apperrors.CodeInvalidFormat,
			"code must be exactly 9 digits", map[string]string{"code": code})
	}
	switch {
	case code[3:] == "000000":
		return LevelRegion, nil
	case code[6:] == "000" && code[3:6] == "000":
		return LevelProvince, nil
	case code[6:] == "000":
		return LevelCityMunicipality, nil
	default:
		return LevelBarangay, nil
	}
}

// WellFormed reports whether code is exactly nine ASCII digits.
func WellFormed(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
