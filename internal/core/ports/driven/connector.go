package driven

import (
	"context"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// Connector fetches one dataset type from one external source. Implementations
// live in internal/connectors and own their transport details: endpoints,
// rate limits, retries and response decoding.
type Connector interface {
	// DatasetType identifies the dataset this connector provides.
	DatasetType() domain.DatasetType

	// Source identifies the external system the data comes from.
	Source() domain.SourceSystem

	// TestConnection probes the source and reports whether it is reachable.
	TestConnection(ctx context.Context) bool

	// Fetch downloads all features of the dataset within the given district
	// boundary. The boundary collection is always in the target CRS. The
	// returned collection carries its own CRS tag; it may legitimately be
	// empty when the district has no such features.
	Fetch(ctx context.Context, boundary domain.FeatureCollection) (domain.FeatureCollection, error)
}

// BoundaryConnector resolves a district to its administrative boundary
// polygon. The boundary anchors every other fetch, so it is a separate port:
// failure here aborts the whole acquisition instead of degrading it.
type BoundaryConnector interface {
	TestConnection(ctx context.Context) bool

	// FetchBoundary returns the boundary of the named district in the
	// target CRS.
	FetchBoundary(ctx context.Context, district domain.District) (domain.FeatureCollection, error)
}
