// Package geo wraps the spatial primitives the pipeline is built on:
// coordinate transforms between the supported reference systems, bounding
// boxes, exact clipping, validity repair, and GeoJSON (de)serialization.
package geo

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// utmZone is the UTM zone covering Berlin (ETRS89 / UTM 33N, EPSG:25833).
const utmZone = 33

var (
	lonLatToUTM = wgs84.LonLat().To(wgs84.ETRS89UTM(utmZone))
	utmToLonLat = wgs84.ETRS89UTM(utmZone).To(wgs84.LonLat())
)

// TransformGeometry reprojects a single geometry between the supported
// reference systems. Transforming to the CRS the geometry is already in is a
// no-op.
func TransformGeometry(g geom.Geometry, from, to domain.CRS) (geom.Geometry, error) {
	if !from.IsKnown() {
		return geom.Geometry{}, domain.ErrMissingCRS
	}
	if !to.IsKnown() {
		return geom.Geometry{}, fmt.Errorf("%w: target %q", domain.ErrMissingCRS, to)
	}
	if from == to {
		return g, nil
	}

	var tf wgs84.Func
	switch {
	case from == domain.CRSWGS84 && to == domain.CRSETRS89UTM33:
		tf = lonLatToUTM
	case from == domain.CRSETRS89UTM33 && to == domain.CRSWGS84:
		tf = utmToLonLat
	default:
		return geom.Geometry{}, fmt.Errorf("unsupported transform %s -> %s", from, to)
	}

	out := g.TransformXY(func(xy geom.XY) geom.XY {
		x, y, _ := tf(xy.X, xy.Y, 0)
		return geom.XY{X: x, Y: y}
	})
	return out, nil
}

// TransformCollection reprojects every feature of a collection into the
// target CRS. Collections without a known CRS tag are rejected rather than
// assumed to be in any particular system.
func TransformCollection(fc domain.FeatureCollection, to domain.CRS) (domain.FeatureCollection, error) {
	if !fc.CRS.IsKnown() {
		return domain.FeatureCollection{}, domain.ErrMissingCRS
	}
	if fc.CRS == to {
		return fc, nil
	}

	out := domain.NewFeatureCollection(to)
	out.Features = make([]domain.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		g, err := TransformGeometry(f.Geometry, fc.CRS, to)
		if err != nil {
			return domain.FeatureCollection{}, fmt.Errorf("feature %d: %w", i, err)
		}
		out.Append(domain.Feature{Geometry: g, Attributes: f.Attributes})
	}
	return out, nil
}

// NewPoint builds a point geometry from x/y coordinates.
func NewPoint(x, y float64) (geom.Geometry, error) {
	return geom.UnmarshalWKT(fmt.Sprintf("POINT(%v %v)", x, y))
}
