package domain

import "github.com/peterstace/simplefeatures/geom"

// Reserved attribute keys of the standardized schema. A feature whose
// attribute map carries all of these is already standardized and must not be
// wrapped a second time.
const (
	KeyFeatureID          = "feature_id"
	KeyDatasetType        = "dataset_type"
	KeySourceSystem       = "source_system"
	KeyDistrict           = "bezirk"
	KeyOriginalAttributes = "original_attributes"
)

// StandardizedFeature is one row of the harmonized output. Every feature
// carries the same minimal schema regardless of source; everything
// source-specific is preserved uninterpreted in OriginalAttributes.
//
// Invariants: Geometry is valid and expressed in TargetCRS. Features whose
// geometry cannot be repaired never appear here.
type StandardizedFeature struct {
	FeatureID          string
	Dataset            DatasetType
	Source             SourceSystem
	District           District
	Geometry           geom.Geometry
	OriginalAttributes Attributes
}

// HarmonizedCollection is the harmonization engine's output: one unified
// collection in the target CRS, grouped counts per dataset, and the features
// themselves. Datasets that ended up empty after clipping keep an entry with
// a zero count so "no data" is distinguishable from "not processed".
type HarmonizedCollection struct {
	CRS      CRS
	District District
	Features []StandardizedFeature
	// CountsByDataset maps every processed dataset type to its surviving
	// feature count, including zero.
	CountsByDataset map[DatasetType]int
}

// Count returns the total number of harmonized features.
func (h HarmonizedCollection) Count() int {
	return len(h.Features)
}

// QualityStats is the aggregate quality report for one harmonization run.
// The three fractional scores are each in [0, 1] and combine into the overall
// score with fixed weights (validity 0.4, completeness 0.4, coverage 0.2) so
// reports stay comparable across runs.
type QualityStats struct {
	TotalFeatures         int
	GeometryValidity      float64
	AttributeCompleteness float64
	// SpatialCoverage is reported as a percentage in [0, 100].
	SpatialCoverage float64
	// DroppedGeometries counts features removed because their geometry
	// remained invalid after repair.
	DroppedGeometries int
	// SkippedDatasets counts datasets excluded from the output entirely
	// (missing CRS, stage failure).
	SkippedDatasets int
	SpatialExtent   *BBox
	OverallScore    float64
}

// Quality score combination weights. Fixed, not configurable per request.
const (
	WeightValidity     = 0.4
	WeightCompleteness = 0.4
	WeightCoverage     = 0.2
)

// CombineQualityScore folds the three fractional scores into the weighted
// overall score. Coverage is taken as a percentage and normalized.
func CombineQualityScore(validity, completeness, coveragePct float64) float64 {
	return validity*WeightValidity +
		completeness*WeightCompleteness +
		(coveragePct/100)*WeightCoverage
}
