package geo

import (
	"github.com/peterstace/simplefeatures/geom"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// Bounds returns the bounding box of a geometry. The boolean is false for
// empty geometries.
func Bounds(g geom.Geometry) (domain.BBox, bool) {
	env := g.Envelope()
	mn, mx, ok := env.MinMaxXYs()
	if !ok {
		return domain.BBox{}, false
	}
	return domain.BBox{MinX: mn.X, MinY: mn.Y, MaxX: mx.X, MaxY: mx.Y}, true
}

// CollectionBounds returns the combined bounding box of every feature in the
// collection, or nil when the collection holds no non-empty geometry.
func CollectionBounds(fc domain.FeatureCollection) *domain.BBox {
	var acc *domain.BBox
	for _, f := range fc.Features {
		b, ok := Bounds(f.Geometry)
		if !ok {
			continue
		}
		if acc == nil {
			cp := b
			acc = &cp
			continue
		}
		acc.MinX = min(acc.MinX, b.MinX)
		acc.MinY = min(acc.MinY, b.MinY)
		acc.MaxX = max(acc.MaxX, b.MaxX)
		acc.MaxY = max(acc.MaxY, b.MaxY)
	}
	return acc
}

// Expand grows a bounding box by the given margin on every side. The margin
// is expressed in the box's own coordinate units (meters for EPSG:25833,
// degrees for EPSG:4326).
func Expand(b domain.BBox, margin float64) domain.BBox {
	return domain.BBox{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}
