package domain

import "fmt"

// SourceSystem identifies which external system a dataset came from.
type SourceSystem string

const (
	// SourceGeoportal is the Berlin Geoportal WFS (gdi.berlin.de).
	SourceGeoportal SourceSystem = "geoportal"
	// SourceOSM is the OpenStreetMap Overpass API.
	SourceOSM SourceSystem = "osm"
)

// DatasetType identifies one thematic layer. The set is closed and each type
// maps 1:1 to a connector implementation.
type DatasetType string

const (
	// DatasetDistrictBoundaries is the administrative district boundary
	// layer. It is fetched for every request regardless of what was asked
	// for, since all spatial filtering depends on it.
	DatasetDistrictBoundaries DatasetType = "bezirksgrenzen"

	// DatasetBuildings is the ALKIS building footprint layer.
	DatasetBuildings DatasetType = "gebaeude"

	// DatasetTransitStops is the public transport stop layer from
	// OpenStreetMap.
	DatasetTransitStops DatasetType = "oepnv_haltestellen"

	// DatasetCyclingNetwork is the Berlin cycling network layer.
	DatasetCyclingNetwork DatasetType = "radverkehrsnetz"
)

// RequestableDatasets lists the dataset types a user may ask for. The
// district boundary is excluded: it is always included implicitly.
var RequestableDatasets = []DatasetType{
	DatasetBuildings,
	DatasetTransitStops,
	DatasetCyclingNetwork,
}

// ParseDatasetType resolves a requestable dataset identifier string.
// Unknown identifiers return ErrUnknownDataset. The district boundary is not
// requestable: it comes with every acquisition, so asking for it explicitly
// is rejected with a hint instead of producing a boundary-only request.
func ParseDatasetType(s string) (DatasetType, error) {
	switch DatasetType(s) {
	case DatasetBuildings, DatasetTransitStops, DatasetCyclingNetwork:
		return DatasetType(s), nil
	case DatasetDistrictBoundaries:
		return "", fmt.Errorf("%w: %q is included in every request and cannot be requested on its own", ErrUnknownDataset, s)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
}

func (d DatasetType) String() string {
	return string(d)
}

// DatasetDescriptor carries the static descriptive metadata for a dataset
// type: display name, licensing and attribution texts, update cadence.
type DatasetDescriptor struct {
	Type            DatasetType
	Source          SourceSystem
	Name            string
	Description     string
	License         string
	Attribution     string
	UpdateFrequency string
}

// datasetDescriptors is the static descriptor table, keyed by dataset type.
var datasetDescriptors = map[DatasetType]DatasetDescriptor{
	DatasetDistrictBoundaries: {
		Type:            DatasetDistrictBoundaries,
		Source:          SourceGeoportal,
		Name:            "Bezirksgrenzen Berlin",
		Description:     "Administrative district boundaries",
		License:         "CC BY 3.0 DE",
		Attribution:     "Geoportal Berlin (gdi.berlin.de)",
		UpdateFrequency: "monthly",
	},
	DatasetBuildings: {
		Type:            DatasetBuildings,
		Source:          SourceGeoportal,
		Name:            "Gebäudedaten Berlin",
		Description:     "Building footprints and usage data",
		License:         "CC BY 3.0 DE",
		Attribution:     "Geoportal Berlin (gdi.berlin.de)",
		UpdateFrequency: "quarterly",
	},
	DatasetTransitStops: {
		Type:            DatasetTransitStops,
		Source:          SourceOSM,
		Name:            "ÖPNV-Haltestellen Berlin",
		Description:     "Public transport stops from OpenStreetMap",
		License:         "Open Database License (ODbL)",
		Attribution:     "OpenStreetMap Contributors",
		UpdateFrequency: "daily",
	},
	DatasetCyclingNetwork: {
		Type:            DatasetCyclingNetwork,
		Source:          SourceGeoportal,
		Name:            "Radverkehrsnetz Berlin",
		Description:     "Cycling network and long-distance routes",
		License:         "CC BY 3.0 DE",
		Attribution:     "Geoportal Berlin (gdi.berlin.de)",
		UpdateFrequency: "monthly",
	},
}

// Descriptor returns the static metadata for a dataset type.
// The boolean is false for unknown types.
func Descriptor(t DatasetType) (DatasetDescriptor, bool) {
	d, ok := datasetDescriptors[t]
	return d, ok
}
