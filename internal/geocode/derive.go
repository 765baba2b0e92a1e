package geocode

// The dataset keeps three prefix widths for ancestors. They are kept as
// separate functions on purpose; region uses a shorter prefix than
// province.

// CityMunicipalityCodeOf returns the city or municipality code that owns a
// barangay code: the first six digits followed by "000".
func CityMunicipalityCodeOf(code string) string {
	return code[:6] + "000"
}

// ProvinceCodeOf returns the province code for code: the first three digits
// followed by six zeros.
func ProvinceCodeOf(code string) string {
	return code[:3] + "000000"
}

// RegionCodeOf returns the region code for code: the first two digits
// followed by seven zeros.
func RegionCodeOf(code string) string {
	return code[:2] + "0000000"
}
