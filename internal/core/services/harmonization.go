package services

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

// HarmonizationService turns raw per-source downloads into one coherent
// district dataset: every geometry in the target CRS, clipped to the district
// boundary, valid, and carrying the unified attribute schema.
type HarmonizationService struct{}

// NewHarmonizationService creates a harmonization service.
func NewHarmonizationService() *HarmonizationService {
	return &HarmonizationService{}
}

// Harmonize processes acquisition results through the fixed stage order:
// CRS standardization, boundary clipping, geometry repair, schema
// unification, quality scoring. Datasets that failed to download or arrive
// without a known CRS are skipped and counted; the call only fails when no
// dataset besides the boundary survives.
func (s *HarmonizationService) Harmonize(district domain.District, results []domain.AcquisitionResult) (domain.HarmonizedCollection, domain.QualityStats, error) {
	// 1. Locate the boundary and build the clip geometry.
	boundaryResult, ok := findBoundary(results)
	if !ok || !boundaryResult.OK() {
		return domain.HarmonizedCollection{}, domain.QualityStats{}, domain.ErrBoundaryUnavailable
	}
	boundaryFC, err := geo.TransformCollection(boundaryResult.Collection, domain.TargetCRS)
	if err != nil {
		return domain.HarmonizedCollection{}, domain.QualityStats{}, fmt.Errorf("standardize boundary CRS: %w", err)
	}
	clipGeom, err := unionGeometries(boundaryFC)
	if err != nil {
		return domain.HarmonizedCollection{}, domain.QualityStats{}, fmt.Errorf("build clip geometry: %w", err)
	}

	out := domain.HarmonizedCollection{
		CRS:             domain.TargetCRS,
		District:        district,
		CountsByDataset: make(map[domain.DatasetType]int),
	}
	stats := domain.QualityStats{}

	// The boundary itself is part of the output, annotated with its
	// geodesic area so downstream reports do not recompute it.
	boundaryFeatures := s.standardize(domain.DatasetDistrictBoundaries, boundaryResult.Source, district, boundaryFC)
	for i := range boundaryFeatures {
		areaKm2 := geo.GeodesicAreaKm2(boundaryFeatures[i].Geometry, domain.TargetCRS)
		boundaryFeatures[i].OriginalAttributes["flaeche_km2"] = math.Round(areaKm2*100) / 100
	}
	out.Features = append(out.Features, boundaryFeatures...)
	out.CountsByDataset[domain.DatasetDistrictBoundaries] = len(boundaryFeatures)

	// 2. Process every other dataset through the stage pipeline.
	validCount, withAttrs := 0, 0
	survivors := 0

	for _, res := range results {
		if res.Dataset == domain.DatasetDistrictBoundaries {
			continue
		}
		if !res.OK() {
			logger.Warn("skipping %s: %s", res.Dataset, res.Stats.ErrorMessage)
			stats.SkippedDatasets++
			continue
		}
		if !res.Collection.CRS.IsKnown() {
			logger.Warn("skipping %s: source did not declare a CRS", res.Dataset)
			stats.SkippedDatasets++
			continue
		}

		fc, err := geo.TransformCollection(res.Collection, domain.TargetCRS)
		if err != nil {
			logger.Warn("skipping %s: CRS standardization failed: %v", res.Dataset, err)
			stats.SkippedDatasets++
			continue
		}

		clipped := s.clipAndRepair(res.Dataset, fc, clipGeom, &stats)
		features := s.standardize(res.Dataset, res.Source, district, clipped)

		for _, f := range features {
			validCount++
			if len(f.OriginalAttributes) > 0 {
				withAttrs++
			}
		}

		out.Features = append(out.Features, features...)
		out.CountsByDataset[res.Dataset] = len(features)
		survivors++
	}

	if survivors == 0 {
		return domain.HarmonizedCollection{}, domain.QualityStats{}, domain.ErrNoValidDatasets
	}

	// 3. Score the harmonized result.
	stats.TotalFeatures = out.Count()
	stats.SpatialExtent = harmonizedBounds(out)
	stats.GeometryValidity = ratio(validCount, validCount+stats.DroppedGeometries)
	stats.AttributeCompleteness = ratio(withAttrs, validCount)
	stats.SpatialCoverage = math.Min(100, float64(out.Count())/expectedFeatureBaseline*100)
	stats.OverallScore = domain.CombineQualityScore(stats.GeometryValidity, stats.AttributeCompleteness, stats.SpatialCoverage)

	logger.Info("Harmonized %d feature(s) across %d dataset(s), score %.2f",
		out.Count(), len(out.CountsByDataset), stats.OverallScore)
	return out, stats, nil
}

// clipAndRepair runs the clipping and repair stages over one dataset.
// Features clipped down to nothing are outside the district and silently
// removed; geometries that stay invalid after repair are dropped and counted.
func (s *HarmonizationService) clipAndRepair(dataset domain.DatasetType, fc domain.FeatureCollection, boundary geom.Geometry, stats *domain.QualityStats) domain.FeatureCollection {
	out := domain.NewFeatureCollection(fc.CRS)
	for _, f := range fc.Features {
		g := f.Geometry

		repaired, ok := geo.Repair(g)
		if !ok {
			stats.DroppedGeometries++
			logger.Debug("%s: dropped unrepairable geometry", dataset)
			continue
		}
		g = repaired

		clipped, err := geo.Clip(g, boundary)
		if err != nil {
			// Keep the unclipped geometry rather than lose the feature.
			logger.Warn("%s: clip failed, keeping unclipped geometry: %v", dataset, err)
			clipped = g
		}
		if clipped.IsEmpty() {
			continue
		}

		out.Append(domain.Feature{Geometry: clipped, Attributes: f.Attributes})
	}
	return out
}

// standardize maps raw features onto the unified schema. Already-standardized
// features are recognized by their reserved keys and passed through with
// their identity intact, so running harmonization twice yields the same
// output.
func (s *HarmonizationService) standardize(dataset domain.DatasetType, source domain.SourceSystem, district domain.District, fc domain.FeatureCollection) []domain.StandardizedFeature {
	features := make([]domain.StandardizedFeature, 0, fc.Count())
	for i, f := range fc.Features {
		sf := domain.StandardizedFeature{
			Dataset:  dataset,
			Source:   source,
			District: district,
			Geometry: f.Geometry,
		}

		if id := f.Attributes.GetString(domain.KeyFeatureID); id != "" {
			sf.FeatureID = id
			sf.OriginalAttributes = unwrapOriginal(f.Attributes)
		} else {
			sf.FeatureID = fmt.Sprintf("%s_%d", dataset, i)
			sf.OriginalAttributes = f.Attributes.Clone()
		}
		if sf.OriginalAttributes == nil {
			sf.OriginalAttributes = domain.Attributes{}
		}

		features = append(features, sf)
	}
	return features
}

// unwrapOriginal extracts the nested original attributes from a feature that
// already carries the unified schema.
func unwrapOriginal(attrs domain.Attributes) domain.Attributes {
	raw, ok := attrs[domain.KeyOriginalAttributes]
	if !ok {
		out := attrs.Clone()
		for _, key := range []string{domain.KeyFeatureID, domain.KeyDatasetType, domain.KeySourceSystem, domain.KeyDistrict} {
			delete(out, key)
		}
		return out
	}

	// GeoJSON parsing flattens nested objects to JSON text.
	if enc, ok := raw.(string); ok {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(enc), &decoded); err == nil {
			out := make(domain.Attributes, len(decoded))
			for k, v := range decoded {
				out[k] = v
			}
			return out
		}
	}
	return domain.Attributes{}
}

// findBoundary picks the boundary dataset out of the acquisition results.
func findBoundary(results []domain.AcquisitionResult) (domain.AcquisitionResult, bool) {
	for _, res := range results {
		if res.Dataset == domain.DatasetDistrictBoundaries {
			return res, true
		}
	}
	return domain.AcquisitionResult{}, false
}

// unionGeometries merges all boundary features into one clip geometry.
func unionGeometries(fc domain.FeatureCollection) (geom.Geometry, error) {
	if fc.IsEmpty() {
		return geom.Geometry{}, domain.ErrBoundaryUnavailable
	}
	merged := fc.Features[0].Geometry
	for _, f := range fc.Features[1:] {
		var err error
		merged, err = geom.Union(merged, f.Geometry)
		if err != nil {
			return geom.Geometry{}, err
		}
	}
	return merged, nil
}

// harmonizedBounds computes the combined extent of all harmonized features.
func harmonizedBounds(hc domain.HarmonizedCollection) *domain.BBox {
	fc := domain.NewFeatureCollection(hc.CRS)
	for _, f := range hc.Features {
		fc.Append(domain.Feature{Geometry: f.Geometry})
	}
	return geo.CollectionBounds(fc)
}

// ratio divides safely, treating an empty denominator as a perfect score.
func ratio(num, den int) float64 {
	if den == 0 {
		return 1.0
	}
	return float64(num) / float64(den)
}
