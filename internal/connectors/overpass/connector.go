// Package overpass fetches public transit stops from OpenStreetMap through
// the Overpass API.
package overpass

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	overpassapi "github.com/serjvanilla/go-overpass"
	"golang.org/x/time/rate"

	"github.com/urbaniq/urbaniq-cli/internal/connectors"
	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

const (
	// DefaultEndpoint is the public Overpass API instance.
	DefaultEndpoint = "https://overpass-api.de/api/interpreter"

	// DefaultTimeout bounds a single Overpass request client-side.
	DefaultTimeout = 30 * time.Second

	// requestRate throttles requests to the shared public instance.
	requestRate = 2
)

// Config holds the Overpass connector settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// DefaultConfig returns the production Overpass settings.
func DefaultConfig() Config {
	return Config{Endpoint: DefaultEndpoint, Timeout: DefaultTimeout}
}

// Connector fetches transit stop nodes for a district from Overpass.
type Connector struct {
	client  overpassapi.Client
	limiter *rate.Limiter
}

// New creates an Overpass connector.
func New(cfg Config) *Connector {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &Connector{
		client:  overpassapi.NewWithSettings(cfg.Endpoint, 1, httpClient),
		limiter: rate.NewLimiter(rate.Limit(requestRate), 1),
	}
}

// DatasetType identifies the dataset this connector provides.
func (c *Connector) DatasetType() domain.DatasetType { return domain.DatasetTransitStops }

// Source identifies the external system the data comes from.
func (c *Connector) Source() domain.SourceSystem { return domain.SourceOSM }

// TestConnection probes the Overpass instance with a minimal query.
func (c *Connector) TestConnection(ctx context.Context) bool {
	_, err := c.query(ctx, fmt.Sprintf("[out:json][timeout:%d];out count;", queryTimeout))
	return err == nil
}

// Fetch downloads all transit stop nodes inside the buffered bounding box of
// the district boundary. The boundary arrives in the projected CRS; Overpass
// only speaks WGS84, so the box is reprojected before querying. Results come
// back as WGS84 points and are left in that CRS for harmonization.
func (c *Connector) Fetch(ctx context.Context, boundary domain.FeatureCollection) (domain.FeatureCollection, error) {
	wgs, err := geo.TransformCollection(boundary, domain.CRSWGS84)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch %s: %w", domain.DatasetTransitStops, err)
	}
	bounds := geo.CollectionBounds(wgs)
	if bounds == nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch %s: boundary has no extent", domain.DatasetTransitStops)
	}

	query := buildStopQuery(geo.Expand(*bounds, bboxBufferDegrees))

	result, err := c.query(ctx, query)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch %s: %w", domain.DatasetTransitStops, err)
	}

	fc, err := nodesToCollection(result)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("fetch %s: %w", domain.DatasetTransitStops, err)
	}
	logger.Debug("overpass: %d transit stop(s) in bbox", fc.Count())
	return fc, nil
}

// query runs one rate-limited Overpass query with retries on transient
// failures.
func (c *Connector) query(ctx context.Context, q string) (overpassapi.Result, error) {
	var result overpassapi.Result
	err := connectors.Retry(ctx, "overpass", func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		result, err = c.client.Query(q)
		if err != nil {
			return fmt.Errorf("%w: %v", connectors.ErrServiceUnavailable, err)
		}
		return nil
	})
	return result, err
}

// nodesToCollection converts Overpass nodes into WGS84 point features. Nodes
// are emitted in ID order so repeated runs produce identical output.
func nodesToCollection(result overpassapi.Result) (domain.FeatureCollection, error) {
	ids := make([]int64, 0, len(result.Nodes))
	for id := range result.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fc := domain.NewFeatureCollection(domain.CRSWGS84)
	for _, id := range ids {
		node := result.Nodes[id]
		if node == nil {
			continue
		}
		pt, err := geo.NewPoint(node.Lon, node.Lat)
		if err != nil {
			return domain.FeatureCollection{}, fmt.Errorf("node %d: %w", id, err)
		}

		attrs := make(domain.Attributes, len(node.Tags)+2)
		for k, v := range node.Tags {
			attrs[k] = v
		}
		attrs["osm_id"] = strconv.FormatInt(id, 10)
		attrs["transport_mode"] = classifyTransportMode(node.Tags)

		fc.Append(domain.Feature{Geometry: pt, Attributes: attrs})
	}
	return fc, nil
}
