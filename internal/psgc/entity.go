package psgc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CodeRef is a parent pointer. The dataset encodes a missing parent as
// false, which decodes to the empty string.
type CodeRef string

// UnmarshalJSON accepts a string, false or null.
func (c *CodeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*c = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CodeRef(s)
		return nil
	default:
		return fmt.Errorf("unsupported code reference %s", data)
	}
}

// String returns the code, or "" when absent.
func (c CodeRef) String() string {
	return string(c)
}

// IslandGroup is the root of the hierarchy: luzon, visayas or mindanao.
type IslandGroup struct {
	Code string `json:"code" jsonschema:"Island group code"`
	Name string `json:"name" jsonschema:"Island group name"`
}

// Region is a top-level administrative region.
type Region struct {
	Code            string `json:"code" jsonschema:"9-digit region code"`
	Name            string `json:"name" jsonschema:"Region name"`
	RegionName      string `json:"regionName,omitempty" jsonschema:"Short region name"`
	IslandGroupCode string `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// Province is a province within a region.
type Province struct {
	Code            string `json:"code" jsonschema:"9-digit province code"`
	Name            string `json:"name" jsonschema:"Province name"`
	RegionCode      string `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode string `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// District shares the province shape; the dataset uses it for Metro Manila.
type District struct {
	Code            string `json:"code" jsonschema:"9-digit district code"`
	Name            string `json:"name" jsonschema:"District name"`
	RegionCode      string `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode string `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// City is a component or independent city.
type City struct {
	Code            string  `json:"code" jsonschema:"9-digit city code"`
	Name            string  `json:"name" jsonschema:"City name"`
	OldName         string  `json:"oldName,omitempty" jsonschema:"Former name"`
	IsCapital       bool    `json:"isCapital,omitempty" jsonschema:"Whether the city is a provincial capital"`
	DistrictCode    CodeRef `json:"districtCode,omitempty" jsonschema:"Parent district code when applicable"`
	ProvinceCode    CodeRef `json:"provinceCode,omitempty" jsonschema:"Parent province code; empty for independent cities"`
	RegionCode      string  `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode string  `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// Municipality is a municipality within a province.
type Municipality struct {
	Code            string  `json:"code" jsonschema:"9-digit municipality code"`
	Name            string  `json:"name" jsonschema:"Municipality name"`
	OldName         string  `json:"oldName,omitempty" jsonschema:"Former name"`
	IsCapital       bool    `json:"isCapital,omitempty" jsonschema:"Whether the municipality is a provincial capital"`
	DistrictCode    CodeRef `json:"districtCode,omitempty" jsonschema:"Parent district code when applicable"`
	ProvinceCode    CodeRef `json:"provinceCode,omitempty" jsonschema:"Parent province code"`
	RegionCode      string  `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode string  `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// CityMunicipality is the merged view of cities and municipalities.
type CityMunicipality struct {
	Code            string  `json:"code" jsonschema:"9-digit city or municipality code"`
	Name            string  `json:"name" jsonschema:"City or municipality name"`
	OldName         string  `json:"oldName,omitempty" jsonschema:"Former name"`
	IsCapital       bool    `json:"isCapital,omitempty" jsonschema:"Whether it is a provincial capital"`
	IsCity          bool    `json:"isCity,omitempty" jsonschema:"Whether the entry is a city"`
	IsMunicipality  bool    `json:"isMunicipality,omitempty" jsonschema:"Whether the entry is a municipality"`
	DistrictCode    CodeRef `json:"districtCode,omitempty" jsonschema:"Parent district code when applicable"`
	ProvinceCode    CodeRef `json:"provinceCode,omitempty" jsonschema:"Parent province code; empty for independent cities"`
	RegionCode      string  `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode string  `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// SubMunicipality is a subdivision of a city (Manila).
type SubMunicipality struct {
	Code            string  `json:"code" jsonschema:"9-digit sub-municipality code"`
	Name            string  `json:"name" jsonschema:"Sub-municipality name"`
	OldName         string  `json:"oldName,omitempty" jsonschema:"Former name"`
	DistrictCode    CodeRef `json:"districtCode,omitempty" jsonschema:"Parent district code when applicable"`
	ProvinceCode    CodeRef `json:"provinceCode,omitempty" jsonschema:"Parent province code"`
	RegionCode      string  `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode string  `json:"islandGroupCode" jsonschema:"Parent island group code"`
}

// Barangay is the smallest administrative division. At most one of
// CityCode, MunicipalityCode and SubMunicipalityCode is set.
type Barangay struct {
	Code                string  `json:"code" jsonschema:"9-digit barangay code"`
	Name                string  `json:"name" jsonschema:"Barangay name"`
	OldName             string  `json:"oldName,omitempty" jsonschema:"Former name"`
	SubMunicipalityCode CodeRef `json:"subMunicipalityCode,omitempty" jsonschema:"Parent sub-municipality code"`
	CityCode            CodeRef `json:"cityCode,omitempty" jsonschema:"Parent city code"`
	MunicipalityCode    CodeRef `json:"municipalityCode,omitempty" jsonschema:"Parent municipality code"`
	DistrictCode        CodeRef `json:"districtCode,omitempty" jsonschema:"Parent district code when applicable"`
	ProvinceCode        CodeRef `json:"provinceCode,omitempty" jsonschema:"Parent province code"`
	RegionCode          string  `json:"regionCode" jsonschema:"Parent region code"`
	IslandGroupCode     string  `json:"islandGroupCode" jsonschema:"Parent island group code"`
}
