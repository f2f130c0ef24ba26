package geo

import (
	"encoding/json"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// rawFeatureCollection mirrors the GeoJSON FeatureCollection envelope.
// Geometries are kept raw so each one can be decoded without validation:
// external services do ship self-intersecting polygons, and those must reach
// the repair stage instead of failing the whole download.
type rawFeatureCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// ParseFeatureCollection decodes a GeoJSON FeatureCollection into a
// CRS-tagged domain collection. GeoJSON has no reliable in-band CRS, so the
// caller states which system the coordinates are in. Features without a
// geometry are skipped.
func ParseFeatureCollection(data []byte, crs domain.CRS) (domain.FeatureCollection, error) {
	var raw rawFeatureCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("parse feature collection: %w", err)
	}
	if raw.Type != "FeatureCollection" {
		return domain.FeatureCollection{}, fmt.Errorf("parse feature collection: unexpected type %q", raw.Type)
	}

	fc := domain.NewFeatureCollection(crs)
	fc.Features = make([]domain.Feature, 0, len(raw.Features))
	for i, rf := range raw.Features {
		if len(rf.Geometry) == 0 || string(rf.Geometry) == "null" {
			continue
		}
		g, err := geom.UnmarshalGeoJSON(rf.Geometry, geom.NoValidate{})
		if err != nil {
			return domain.FeatureCollection{}, fmt.Errorf("parse geometry of feature %d: %w", i, err)
		}
		fc.Append(domain.Feature{
			Geometry:   g,
			Attributes: toAttributes(rf.Properties),
		})
	}
	return fc, nil
}

// toAttributes narrows decoded JSON properties to the closed attribute value
// union. Nested objects and arrays are re-encoded as JSON strings so nothing
// is lost but the map stays scalar-valued.
func toAttributes(props map[string]any) domain.Attributes {
	if len(props) == 0 {
		return domain.Attributes{}
	}
	attrs := make(domain.Attributes, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case string, float64, bool, nil:
			attrs[k] = val
		default:
			if enc, err := json.Marshal(val); err == nil {
				attrs[k] = string(enc)
			}
		}
	}
	return attrs
}

// featureJSON is the GeoJSON encoding of one harmonized feature.
type featureJSON struct {
	Type       string         `json:"type"`
	Geometry   json.Marshaler `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type featureCollectionJSON struct {
	Type     string        `json:"type"`
	Features []featureJSON `json:"features"`
}

// MarshalHarmonized encodes harmonized features as a GeoJSON
// FeatureCollection. The standardized schema fields become properties;
// original attributes are nested under their own key.
func MarshalHarmonized(features []domain.StandardizedFeature) ([]byte, error) {
	out := featureCollectionJSON{
		Type:     "FeatureCollection",
		Features: make([]featureJSON, 0, len(features)),
	}
	for _, f := range features {
		props := map[string]any{
			domain.KeyFeatureID:          f.FeatureID,
			domain.KeyDatasetType:        string(f.Dataset),
			domain.KeySourceSystem:       string(f.Source),
			domain.KeyDistrict:           string(f.District),
			domain.KeyOriginalAttributes: map[string]domain.AttrValue(f.OriginalAttributes),
		}
		out.Features = append(out.Features, featureJSON{
			Type:       "Feature",
			Geometry:   f.Geometry,
			Properties: props,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
