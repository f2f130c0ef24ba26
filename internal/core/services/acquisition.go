package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"
	"time"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/core/ports/driven"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

// expectedFeatureBaseline is the feature count that counts as full coverage
// for a district-sized extract. Coverage scales linearly below it.
const expectedFeatureBaseline = 1000

// AcquisitionService coordinates the parallel download of all requested
// datasets for one district. The district boundary is fetched first and
// handed to every dataset connector as the spatial filter; after that,
// dataset failures degrade the result instead of aborting it.
type AcquisitionService struct {
	boundary   driven.BoundaryConnector
	connectors map[domain.DatasetType]driven.Connector
}

// NewAcquisitionService creates an acquisition service over a fixed set of
// dataset connectors.
func NewAcquisitionService(boundary driven.BoundaryConnector, conns ...driven.Connector) *AcquisitionService {
	registry := make(map[domain.DatasetType]driven.Connector, len(conns))
	for _, c := range conns {
		registry[c.DatasetType()] = c
	}
	return &AcquisitionService{
		boundary:   boundary,
		connectors: registry,
	}
}

// Acquire downloads the requested datasets for a district. The returned slice
// always contains the district boundary result plus one entry per requested
// dataset, in stable order: boundary first, then the datasets as requested.
// Individual dataset failures are recorded in their result entry; only a
// missing boundary is fatal.
func (s *AcquisitionService) Acquire(ctx context.Context, district domain.District, datasets []domain.DatasetType) ([]domain.AcquisitionResult, error) {
	if len(datasets) == 0 {
		return nil, domain.ErrNoDatasets
	}
	for _, dt := range datasets {
		if dt == domain.DatasetDistrictBoundaries {
			continue
		}
		if _, ok := s.connectors[dt]; !ok {
			return nil, fmt.Errorf("no connector for %q: %w", dt, domain.ErrUnknownDataset)
		}
	}

	// 1. Fetch the district boundary. Everything else depends on it.
	logger.Info("Fetching boundary for %s", district)
	start := time.Now()
	boundary, err := s.boundary.FetchBoundary(ctx, district)
	if err != nil {
		if errors.Is(err, domain.ErrBoundaryUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrBoundaryUnavailable, err)
	}

	results := make([]domain.AcquisitionResult, 0, len(datasets)+1)
	results = append(results, s.newResult(domain.DatasetDistrictBoundaries, domain.SourceGeoportal, district, boundary, nil, time.Since(start)))

	// 2. Fan out over the remaining datasets. All slots are claimed before
	// any goroutine starts, so the goroutines are the only map writers while
	// the fan-out is in flight.
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		slots = make(map[domain.DatasetType]domain.AcquisitionResult, len(datasets))
	)
	for _, dt := range datasets {
		if dt != domain.DatasetDistrictBoundaries {
			slots[dt] = domain.AcquisitionResult{}
		}
	}
	for dt := range slots {
		wg.Add(1)
		go func(dt domain.DatasetType) {
			defer wg.Done()
			conn := s.connectors[dt]

			fetchStart := time.Now()
			fc, fetchErr := conn.Fetch(ctx, boundary)
			res := s.newResult(dt, conn.Source(), district, fc, fetchErr, time.Since(fetchStart))

			mu.Lock()
			slots[dt] = res
			mu.Unlock()
		}(dt)
	}
	wg.Wait()

	// 3. Emit results in request order, deduplicated.
	seen := map[domain.DatasetType]bool{domain.DatasetDistrictBoundaries: true}
	for _, dt := range datasets {
		if seen[dt] {
			continue
		}
		seen[dt] = true
		results = append(results, slots[dt])
	}

	return results, nil
}

// TestHealth probes every configured connector concurrently, including the
// boundary service.
func (s *AcquisitionService) TestHealth(ctx context.Context) map[domain.DatasetType]bool {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	health := make(map[domain.DatasetType]bool, len(s.connectors)+1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		ok := s.boundary.TestConnection(ctx)
		mu.Lock()
		health[domain.DatasetDistrictBoundaries] = ok
		mu.Unlock()
	}()

	for dt, conn := range s.connectors {
		wg.Add(1)
		go func(dt domain.DatasetType, conn driven.Connector) {
			defer wg.Done()
			ok := conn.TestConnection(ctx)
			mu.Lock()
			health[dt] = ok
			mu.Unlock()
		}(dt, conn)
	}
	wg.Wait()
	return health
}

// newResult assembles one acquisition result, including runtime statistics
// or the failure classification.
func (s *AcquisitionService) newResult(dataset domain.DatasetType, source domain.SourceSystem, district domain.District, fc domain.FeatureCollection, err error, elapsed time.Duration) domain.AcquisitionResult {
	desc, _ := domain.Descriptor(dataset)
	res := domain.AcquisitionResult{
		Dataset:    dataset,
		Source:     source,
		District:   district,
		Collection: fc,
		Descriptor: desc,
	}

	if err != nil {
		res.Stats = domain.RuntimeStats{
			Status:       classifyFailure(err),
			ErrorMessage: err.Error(),
			Elapsed:      elapsed,
		}
		logger.Warn("%s acquisition failed: %v", dataset, err)
		return res
	}

	res.Stats = runtimeStats(fc, elapsed)
	logger.Info("%s: %d feature(s) in %s", dataset, res.Stats.FeatureCount, elapsed.Round(time.Millisecond))
	return res
}

// runtimeStats computes the per-dataset statistics recorded with a
// successful download.
func runtimeStats(fc domain.FeatureCollection, elapsed time.Duration) domain.RuntimeStats {
	count := fc.Count()

	valid := 0
	for _, f := range fc.Features {
		if !f.Geometry.IsEmpty() {
			valid++
		}
	}
	// An empty dataset downloaded fine but has no quality to speak of.
	quality := 0.0
	if count > 0 {
		quality = float64(valid) / float64(count)
	}

	coverage := math.Min(100, float64(count)/expectedFeatureBaseline*100)

	return domain.RuntimeStats{
		FeatureCount:       count,
		SpatialExtent:      geo.CollectionBounds(fc),
		CoveragePercentage: coverage,
		QualityScore:       quality,
		Elapsed:            elapsed,
		Status:             domain.StatusOK,
	}
}

// classifyFailure separates timeouts from other failures for reporting.
func classifyFailure(err error) domain.ConnectorStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.StatusTimeout
	}
	return domain.StatusError
}
