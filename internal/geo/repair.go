package geo

import (
	"github.com/peterstace/simplefeatures/geom"
)

// IsValid reports whether a geometry satisfies the OGC validity rules
// (no self-intersections, no degenerate rings).
func IsValid(g geom.Geometry) bool {
	return g.Validate() == nil
}

// Repair attempts to fix an invalid geometry by unioning it with itself,
// which re-nodes the rings and resolves many self-intersection cases without
// altering already-valid geometry. The boolean is false when the geometry is
// still invalid afterwards; such geometries must be dropped, never passed on.
func Repair(g geom.Geometry) (geom.Geometry, bool) {
	if g.Validate() == nil {
		return g, true
	}

	repaired, err := geom.Union(g, g)
	if err != nil {
		return geom.Geometry{}, false
	}
	if repaired.Validate() != nil || repaired.IsEmpty() {
		return geom.Geometry{}, false
	}
	return repaired, true
}
