package geoportal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/urbaniq/urbaniq-cli/internal/connectors"
	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
)

const (
	// wfsVersion is the OGC WFS protocol version the geoportal speaks.
	wfsVersion = "2.0.0"

	// outputFormat requests GeoJSON instead of the default GML.
	outputFormat = "application/json"

	// requestRate throttles requests to the geoportal (requests per second).
	requestRate = 2

	// boundaryBufferMeters widens the bbox sent to the server so features on
	// the district edge are not cut off before the exact client-side clip.
	boundaryBufferMeters = 100
)

// Client issues WFS GetFeature requests against the Berlin geoportal. All
// connectors in this package share one client so the rate limit applies to
// the service as a whole, not per dataset.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter

	mu sync.Mutex // serializes limiter waits so bursts stay ordered
}

// NewClient creates a WFS client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestRate), 1),
	}
}

// GetFeatures runs a GetFeature request against endpoint and decodes the
// GeoJSON response. Transient failures are retried with backoff.
func (c *Client) GetFeatures(ctx context.Context, endpoint, typeName string, extra url.Values) (domain.FeatureCollection, error) {
	params := url.Values{}
	params.Set("SERVICE", "WFS")
	params.Set("VERSION", wfsVersion)
	params.Set("REQUEST", "GetFeature")
	params.Set("TYPENAMES", typeName)
	params.Set("OUTPUTFORMAT", outputFormat)
	params.Set("SRSNAME", string(domain.CRSETRS89UTM33))
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	requestURL := endpoint + "?" + params.Encode()

	var body []byte
	err := connectors.Retry(ctx, "geoportal", func(ctx context.Context) error {
		var err error
		body, err = c.get(ctx, requestURL)
		return err
	})
	if err != nil {
		return domain.FeatureCollection{}, err
	}

	fc, err := geo.ParseFeatureCollection(body, domain.CRSETRS89UTM33)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("geoportal: %w", err)
	}
	return fc, nil
}

// Probe checks service availability via GetCapabilities.
func (c *Client) Probe(ctx context.Context, endpoint string) bool {
	params := url.Values{}
	params.Set("SERVICE", "WFS")
	params.Set("VERSION", wfsVersion)
	params.Set("REQUEST", "GetCapabilities")

	body, err := c.get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return false
	}
	return strings.Contains(string(body), "WFS_Capabilities")
}

// get issues a single rate-limited HTTP GET.
func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	c.mu.Lock()
	err := c.limiter.Wait(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("geoportal: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoportal: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geoportal: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, connectors.NewHTTPError(resp.StatusCode, msg, requestURL)
	}
	return body, nil
}

// cqlDistrictFilter builds the attribute filter that selects one district.
func cqlDistrictFilter(district domain.District) string {
	return fmt.Sprintf("namgem='%s'", district)
}

// bboxParam formats a buffered envelope as a WFS BBOX parameter in the
// target CRS.
func bboxParam(b domain.BBox) string {
	buffered := geo.Expand(b, boundaryBufferMeters)
	return fmt.Sprintf("%f,%f,%f,%f,%s",
		buffered.MinX, buffered.MinY, buffered.MaxX, buffered.MaxY,
		domain.CRSETRS89UTM33)
}
