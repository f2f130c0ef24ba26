package geo

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// Clip intersects a geometry with a boundary polygon, keeping only the part
// inside. This is an exact geometric clip, not a bounding-box filter: server
// side bbox queries over-select, so callers run this after download.
func Clip(g, boundary geom.Geometry) (geom.Geometry, error) {
	clipped, err := geom.Intersection(g, boundary)
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("clip: %w", err)
	}
	return clipped, nil
}

// Intersects reports whether two geometries share any point.
func Intersects(a, b geom.Geometry) bool {
	return geom.Intersects(a, b)
}
