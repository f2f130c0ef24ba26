// Package geoportal fetches official Berlin datasets from the Geoportal
// Berlin WFS services: district boundaries, building footprints and the
// cycling network.
package geoportal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

// Default endpoints and layer names for the Berlin geoportal.
const (
	DefaultBoundaryEndpoint = "https://gdi.berlin.de/services/wfs/alkis_bezirke"
	DefaultBoundaryLayer    = "alkis_bezirke:bezirksgrenzen"

	DefaultBuildingsEndpoint = "https://gdi.berlin.de/services/wfs/alkis_gebaeude"
	DefaultBuildingsLayer    = "alkis_gebaeude:gebaeude"

	DefaultCyclingEndpoint = "https://gdi.berlin.de/services/wfs/radverkehrsnetz"
	DefaultCyclingLayer    = "radverkehrsnetz:rvn_netz"

	// DefaultTimeout bounds a single WFS request.
	DefaultTimeout = 30 * time.Second
)

// Config holds the WFS endpoints for the geoportal connectors.
type Config struct {
	BoundaryEndpoint string
	BoundaryLayer    string

	BuildingsEndpoint string
	BuildingsLayer    string

	CyclingEndpoint string
	CyclingLayer    string

	Timeout time.Duration
}

// DefaultConfig returns the production geoportal endpoints.
func DefaultConfig() Config {
	return Config{
		BoundaryEndpoint:  DefaultBoundaryEndpoint,
		BoundaryLayer:     DefaultBoundaryLayer,
		BuildingsEndpoint: DefaultBuildingsEndpoint,
		BuildingsLayer:    DefaultBuildingsLayer,
		CyclingEndpoint:   DefaultCyclingEndpoint,
		CyclingLayer:      DefaultCyclingLayer,
		Timeout:           DefaultTimeout,
	}
}

// BoundaryConnector resolves district names to administrative boundary
// polygons from the ALKIS district layer.
type BoundaryConnector struct {
	client   *Client
	endpoint string
	layer    string
}

// NewBoundaryConnector creates a boundary connector sharing the given client.
func NewBoundaryConnector(client *Client, cfg Config) *BoundaryConnector {
	return &BoundaryConnector{
		client:   client,
		endpoint: cfg.BoundaryEndpoint,
		layer:    cfg.BoundaryLayer,
	}
}

// TestConnection probes the boundary service.
func (c *BoundaryConnector) TestConnection(ctx context.Context) bool {
	return c.client.Probe(ctx, c.endpoint)
}

// FetchBoundary downloads the boundary polygon of one district, selected
// server-side by its official name.
func (c *BoundaryConnector) FetchBoundary(ctx context.Context, district domain.District) (domain.FeatureCollection, error) {
	extra := url.Values{}
	extra.Set("CQL_FILTER", cqlDistrictFilter(district))

	fc, err := c.client.GetFeatures(ctx, c.endpoint, c.layer, extra)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch boundary for %s: %w", district, err)
	}
	if fc.IsEmpty() {
		return domain.FeatureCollection{}, fmt.Errorf("fetch boundary for %s: %w", district, domain.ErrBoundaryUnavailable)
	}
	logger.Debug("geoportal: boundary for %s has %d feature(s)", district, fc.Count())
	return fc, nil
}

// DatasetConnector fetches one WFS layer spatially filtered to a district.
// The server-side BBOX filter over-selects by design; the exact clip against
// the boundary polygon happens later, during harmonization.
type DatasetConnector struct {
	client   *Client
	dataset  domain.DatasetType
	endpoint string
	layer    string
}

// NewBuildingsConnector creates the connector for ALKIS building footprints.
func NewBuildingsConnector(client *Client, cfg Config) *DatasetConnector {
	return &DatasetConnector{
		client:   client,
		dataset:  domain.DatasetBuildings,
		endpoint: cfg.BuildingsEndpoint,
		layer:    cfg.BuildingsLayer,
	}
}

// NewCyclingConnector creates the connector for the cycling network layer.
func NewCyclingConnector(client *Client, cfg Config) *DatasetConnector {
	return &DatasetConnector{
		client:   client,
		dataset:  domain.DatasetCyclingNetwork,
		endpoint: cfg.CyclingEndpoint,
		layer:    cfg.CyclingLayer,
	}
}

// DatasetType identifies the dataset this connector provides.
func (c *DatasetConnector) DatasetType() domain.DatasetType { return c.dataset }

// Source identifies the external system the data comes from.
func (c *DatasetConnector) Source() domain.SourceSystem { return domain.SourceGeoportal }

// TestConnection probes the layer's WFS endpoint.
func (c *DatasetConnector) TestConnection(ctx context.Context) bool {
	return c.client.Probe(ctx, c.endpoint)
}

// Fetch downloads all features of the layer within the buffered bounding box
// of the district boundary. An empty result is not an error: a district can
// legitimately contain none of the requested features.
func (c *DatasetConnector) Fetch(ctx context.Context, boundary domain.FeatureCollection) (domain.FeatureCollection, error) {
	bounds := geo.CollectionBounds(boundary)
	if bounds == nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch %s: boundary has no extent", c.dataset)
	}

	extra := url.Values{}
	extra.Set("BBOX", bboxParam(*bounds))

	fc, err := c.client.GetFeatures(ctx, c.endpoint, c.layer, extra)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch %s: %w", c.dataset, err)
	}
	logger.Debug("geoportal: %s returned %d feature(s)", c.dataset, fc.Count())
	return fc, nil
}
