package psgcfakes

import "github.com/louisbranch/psgc-mcp/internal/psgc"

// Codes used by Dataset. Ancestor codes follow the positional derivation
// rules, so a hierarchy walk from BarangayCode resolves entirely.
const (
	IslandGroupCode      = "luzon"
	RegionCode           = "010000000"
	ProvinceCode         = "012000000"
	CityMunicipalityCode = "012801000"
	BarangayCode         = "012801001"
)

// Dataset returns a small fixture of the dataset keyed by resource path.
func Dataset() map[string]any {
	luzon := psgc.IslandGroup{Code: IslandGroupCode, Name: "Luzon"}
	region := psgc.Region{
		Code:            RegionCode,
		Name:            "Region I",
		RegionName:      "Ilocos Region",
		IslandGroupCode: IslandGroupCode,
	}
	ncr := psgc.Region{
		Code:            "130000000",
		Name:            "National Capital Region",
		RegionName:      "NCR",
		IslandGroupCode: IslandGroupCode,
	}
	province := psgc.Province{
		Code:            ProvinceCode,
		Name:            "Ilocos Norte",
		RegionCode:      RegionCode,
		IslandGroupCode: IslandGroupCode,
	}
	adams := psgc.CityMunicipality{
		Code:            CityMunicipalityCode,
		Name:            "Adams",
		IsMunicipality:  true,
		ProvinceCode:    ProvinceCode,
		RegionCode:      RegionCode,
		IslandGroupCode: IslandGroupCode,
	}
	adamsMunicipality := psgc.Municipality{
		Code:            CityMunicipalityCode,
		Name:            "Adams",
		ProvinceCode:    ProvinceCode,
		RegionCode:      RegionCode,
		IslandGroupCode: IslandGroupCode,
	}
	laoag := psgc.City{
		Code:            "012805000",
		Name:            "City of Laoag",
		IsCapital:       true,
		ProvinceCode:    ProvinceCode,
		RegionCode:      RegionCode,
		IslandGroupCode: IslandGroupCode,
	}
	paranaque := psgc.City{
		Code:            "137604000",
		Name:            "City of Parañaque",
		RegionCode:      "130000000",
		IslandGroupCode: IslandGroupCode,
	}
	adamsPoblacion := psgc.Barangay{
		Code:             BarangayCode,
		Name:             "Adams (Pob.)",
		MunicipalityCode: CityMunicipalityCode,
		ProvinceCode:     ProvinceCode,
		RegionCode:       RegionCode,
		IslandGroupCode:  IslandGroupCode,
	}
	santoNino := psgc.Barangay{
		Code:            "137604013",
		Name:            "Santo Niño",
		CityCode:        "137604000",
		RegionCode:      "130000000",
		IslandGroupCode: IslandGroupCode,
	}

	data := make(map[string]any)
	data["/island-groups.json"] = []psgc.IslandGroup{luzon, {Code: "visayas", Name: "Visayas"}, {Code: "mindanao", Name: "Mindanao"}}
	data["/island-groups/luzon.json"] = luzon
	data["/island-groups/luzon/regions.json"] = []psgc.Region{region, ncr}
	data["/regions.json"] = []psgc.Region{region, ncr}
	data["/regions/"+RegionCode+".json"] = region
	data["/regions/130000000.json"] = ncr
	data["/regions/"+RegionCode+"/provinces.json"] = []psgc.Province{province}
	data["/provinces.json"] = []psgc.Province{province}
	data["/provinces/"+ProvinceCode+".json"] = province
	data["/provinces/"+ProvinceCode+"/municipalities.json"] = []psgc.Municipality{adamsMunicipality}
	data["/cities.json"] = []psgc.City{laoag, paranaque}
	data["/cities/137604000/barangays.json"] = []psgc.Barangay{santoNino}
	data["/municipalities.json"] = []psgc.Municipality{adamsMunicipality}
	data["/municipalities/"+CityMunicipalityCode+".json"] = adamsMunicipality
	data["/cities-municipalities/"+CityMunicipalityCode+".json"] = adams
	data["/barangays.json"] = []psgc.Barangay{adamsPoblacion, santoNino}
	data["/barangays/"+BarangayCode+".json"] = adamsPoblacion
	return data
}
