package geo

import (
	"github.com/golang/geo/s2"
	"github.com/peterstace/simplefeatures/geom"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// earthRadiusKm is the mean Earth radius used for geodesic area.
const earthRadiusKm = 6371.0

// GeodesicAreaKm2 computes the surface area of a polygonal geometry in
// square kilometers on the sphere. The geometry is reprojected to WGS84
// first when it arrives in the projected CRS. Non-areal and degenerate
// geometries yield zero.
func GeodesicAreaKm2(g geom.Geometry, crs domain.CRS) float64 {
	if crs != domain.CRSWGS84 {
		var err error
		g, err = TransformGeometry(g, crs, domain.CRSWGS84)
		if err != nil {
			return 0
		}
	}

	var total float64
	switch g.Type() {
	case geom.TypePolygon:
		total = polygonAreaKm2(g.MustAsPolygon())
	case geom.TypeMultiPolygon:
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			total += polygonAreaKm2(mp.PolygonN(i))
		}
	}
	return total
}

// polygonAreaKm2 computes the outer-ring area minus the holes.
func polygonAreaKm2(p geom.Polygon) float64 {
	area := ringAreaKm2(p.ExteriorRing())
	for i := 0; i < p.NumInteriorRings(); i++ {
		area -= ringAreaKm2(p.InteriorRingN(i))
	}
	if area < 0 {
		return 0
	}
	return area
}

// ringAreaKm2 builds an s2 loop from a lon/lat ring and returns its
// spherical area scaled to km².
func ringAreaKm2(ring geom.LineString) float64 {
	seq := ring.Coordinates()
	n := seq.Length()
	if n < 4 {
		return 0
	}

	// Closed rings repeat the first vertex; s2 loops must not.
	pts := make([]s2.Point, 0, n-1)
	for i := 0; i < n-1; i++ {
		xy := seq.GetXY(i)
		pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(xy.Y, xy.X)))
	}

	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop.Area() * earthRadiusKm * earthRadiusKm
}
