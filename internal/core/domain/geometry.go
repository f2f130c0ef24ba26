package domain

import (
	"github.com/peterstace/simplefeatures/geom"
)

// AttrValue is a single attribute value carried by a feature. Values are
// restricted to the JSON scalar types (string, float64, bool) or nil so that
// source attributes survive round-trips without becoming arbitrarily typed.
type AttrValue any

// Attributes is a free-form attribute map attached to a feature. Missing keys
// are normal, especially for community-maintained OSM data.
type Attributes map[string]AttrValue

// Clone returns a shallow copy of the attribute map.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// GetString returns the string value for key, or "" when the key is absent
// or not a string. Absence of an expected attribute is not an error.
func (a Attributes) GetString(key string) string {
	if v, ok := a[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Feature is one geometry plus its source attributes.
type Feature struct {
	Geometry   geom.Geometry
	Attributes Attributes
}

// FeatureCollection is a CRS-tagged list of features. An empty collection in
// a known CRS is a valid result ("no data existed"), distinct from a missing
// or failed dataset.
type FeatureCollection struct {
	CRS      CRS
	Features []Feature
}

// NewFeatureCollection returns an empty collection tagged with the given CRS.
func NewFeatureCollection(crs CRS) FeatureCollection {
	return FeatureCollection{CRS: crs}
}

// Append adds a feature to the collection.
func (fc *FeatureCollection) Append(f Feature) {
	fc.Features = append(fc.Features, f)
}

// Count returns the number of features in the collection.
func (fc FeatureCollection) Count() int {
	return len(fc.Features)
}

// IsEmpty reports whether the collection holds no features.
func (fc FeatureCollection) IsEmpty() bool {
	return len(fc.Features) == 0
}
