package domain

import "time"

// ConnectorStatus is the outcome of one dataset fetch.
type ConnectorStatus string

const (
	// StatusOK means the fetch succeeded (possibly with zero features).
	StatusOK ConnectorStatus = "ok"
	// StatusError means the fetch failed for a non-timeout reason.
	StatusError ConnectorStatus = "error"
	// StatusTimeout means the fetch failed because the service timed out.
	StatusTimeout ConnectorStatus = "timeout"
)

// BBox is an axis-aligned bounding box in the coordinate order
// minX, minY, maxX, maxY.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Area returns the area of the box, zero for degenerate boxes.
func (b BBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// RuntimeStats records per-dataset acquisition measurements. They feed the
// quality report and make partial failures visible to the caller.
type RuntimeStats struct {
	FeatureCount int
	// SpatialExtent is the bounding box of the returned geometries.
	// Nil when the fetch failed or returned nothing.
	SpatialExtent *BBox
	// CoveragePercentage is a density heuristic in [0, 100]: did we get a
	// plausible amount of data for the area?
	CoveragePercentage float64
	// QualityScore in [0, 1] combines feature presence and geometry validity.
	QualityScore float64
	Elapsed      time.Duration
	Status       ConnectorStatus
	ErrorMessage string
}

// AcquisitionResult is the orchestrator's unit of output: one dataset's
// geometry collection with its descriptor and runtime statistics. Results are
// created fresh per request and handed to harmonization; they are never
// persisted.
type AcquisitionResult struct {
	Dataset    DatasetType
	Source     SourceSystem
	District   District
	Collection FeatureCollection
	Descriptor DatasetDescriptor
	Stats      RuntimeStats
}

// OK reports whether the dataset fetch succeeded.
func (r AcquisitionResult) OK() bool {
	return r.Stats.Status == StatusOK
}
