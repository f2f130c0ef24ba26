package domain

import (
	"fmt"
	"strings"
)

// District is one of the twelve Berlin administrative districts. The set is
// closed: every spatial request is scoped to exactly one of these names, and
// unknown names fail before any network call is made.
type District string

// The twelve Berlin districts.
const (
	DistrictMitte                    District = "Mitte"
	DistrictPankow                   District = "Pankow"
	DistrictCharlottenburg           District = "Charlottenburg-Wilmersdorf"
	DistrictSpandau                  District = "Spandau"
	DistrictSteglitzZehlendorf       District = "Steglitz-Zehlendorf"
	DistrictTempelhofSchoeneberg     District = "Tempelhof-Schöneberg"
	DistrictNeukoelln                District = "Neukölln"
	DistrictTreptowKoepenick         District = "Treptow-Köpenick"
	DistrictMarzahnHellersdorf       District = "Marzahn-Hellersdorf"
	DistrictLichtenberg              District = "Lichtenberg"
	DistrictReinickendorf            District = "Reinickendorf"
	DistrictFriedrichshainKreuzberg  District = "Friedrichshain-Kreuzberg"
)

// AllDistricts lists every Berlin district in display order.
var AllDistricts = []District{
	DistrictMitte,
	DistrictPankow,
	DistrictCharlottenburg,
	DistrictSpandau,
	DistrictSteglitzZehlendorf,
	DistrictTempelhofSchoeneberg,
	DistrictNeukoelln,
	DistrictTreptowKoepenick,
	DistrictMarzahnHellersdorf,
	DistrictLichtenberg,
	DistrictReinickendorf,
	DistrictFriedrichshainKreuzberg,
}

// districtVariations maps common part-names and misspellings to the combined
// district they belong to. Users rarely type the full hyphenated names.
var districtVariations = map[string]District{
	"charlottenburg": DistrictCharlottenburg,
	"wilmersdorf":    DistrictCharlottenburg,
	"tempelhof":      DistrictTempelhofSchoeneberg,
	"schöneberg":     DistrictTempelhofSchoeneberg,
	"schoeneberg":    DistrictTempelhofSchoeneberg,
	"kreuzberg":      DistrictFriedrichshainKreuzberg,
	"friedrichshain": DistrictFriedrichshainKreuzberg,
	"treptow":        DistrictTreptowKoepenick,
	"köpenick":       DistrictTreptowKoepenick,
	"koepenick":      DistrictTreptowKoepenick,
	"steglitz":       DistrictSteglitzZehlendorf,
	"zehlendorf":     DistrictSteglitzZehlendorf,
	"marzahn":        DistrictMarzahnHellersdorf,
	"hellersdorf":    DistrictMarzahnHellersdorf,
	"neukölln":       DistrictNeukoelln,
	"neukoelln":      DistrictNeukoelln,
}

// NormalizeDistrict resolves a user-supplied area name to a known district.
// Matching is case-insensitive and tolerates the common part-name variations
// ("kreuzberg" resolves to "Friedrichshain-Kreuzberg"). Unknown names return
// ErrUnknownDistrict.
func NormalizeDistrict(name string) (District, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty district name", ErrUnknownDistrict)
	}

	lower := strings.ToLower(trimmed)
	for _, d := range AllDistricts {
		if strings.ToLower(string(d)) == lower {
			return d, nil
		}
	}

	if d, ok := districtVariations[lower]; ok {
		return d, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDistrict, name)
}

func (d District) String() string {
	return string(d)
}
