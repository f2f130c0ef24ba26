package geoportal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbaniq/urbaniq-cli/internal/connectors"
	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
)

const boundaryResponse = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[390000,5810000],[400000,5810000],[400000,5822000],[390000,5822000],[390000,5810000]]]},
			"properties": {"namgem": "Pankow", "gem": "03"}
		}
	]
}`

const buildingsResponse = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[391000,5811000],[391010,5811000],[391010,5811010],[391000,5811010],[391000,5811000]]]},
			"properties": {"nutzung": "Wohnen"}
		}
	]
}`

func testConfig(serverURL string) Config {
	cfg := DefaultConfig()
	cfg.BoundaryEndpoint = serverURL + "/bezirke"
	cfg.BuildingsEndpoint = serverURL + "/gebaeude"
	cfg.CyclingEndpoint = serverURL + "/radverkehrsnetz"
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestBoundaryConnector_FetchBoundary(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(boundaryResponse))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	conn := NewBoundaryConnector(NewClient(cfg.Timeout), cfg)

	fc, err := conn.FetchBoundary(context.Background(), domain.DistrictPankow)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.Count())
	assert.Equal(t, domain.CRSETRS89UTM33, fc.CRS)

	assert.Equal(t, "WFS", gotQuery["SERVICE"])
	assert.Equal(t, "2.0.0", gotQuery["VERSION"])
	assert.Equal(t, "GetFeature", gotQuery["REQUEST"])
	assert.Equal(t, "alkis_bezirke:bezirksgrenzen", gotQuery["TYPENAMES"])
	assert.Equal(t, "application/json", gotQuery["OUTPUTFORMAT"])
	assert.Equal(t, "EPSG:25833", gotQuery["SRSNAME"])
	assert.Equal(t, "namgem='Pankow'", gotQuery["CQL_FILTER"])
}

func TestBoundaryConnector_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	conn := NewBoundaryConnector(NewClient(cfg.Timeout), cfg)

	_, err := conn.FetchBoundary(context.Background(), domain.DistrictSpandau)
	assert.ErrorIs(t, err, domain.ErrBoundaryUnavailable)
}

func TestDatasetConnector_FetchSendsBufferedBBox(t *testing.T) {
	var gotBBox string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBBox = r.URL.Query().Get("BBOX")
		w.Write([]byte(buildingsResponse))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	conn := NewBuildingsConnector(NewClient(cfg.Timeout), cfg)
	assert.Equal(t, domain.DatasetBuildings, conn.DatasetType())
	assert.Equal(t, domain.SourceGeoportal, conn.Source())

	boundary, err := geo.ParseFeatureCollection([]byte(boundaryResponse), domain.CRSETRS89UTM33)
	require.NoError(t, err)

	fc, err := conn.Fetch(context.Background(), boundary)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.Count())

	// Boundary extent is 390000..400000 / 5810000..5822000, buffered by 100m.
	assert.Equal(t, "389900.000000,5809900.000000,400100.000000,5822100.000000,EPSG:25833", gotBBox)
}

func TestDatasetConnector_EmptyDistrictIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	conn := NewCyclingConnector(NewClient(cfg.Timeout), cfg)

	boundary, err := geo.ParseFeatureCollection([]byte(boundaryResponse), domain.CRSETRS89UTM33)
	require.NoError(t, err)

	fc, err := conn.Fetch(context.Background(), boundary)
	require.NoError(t, err)
	assert.True(t, fc.IsEmpty())
	assert.Equal(t, domain.CRSETRS89UTM33, fc.CRS)
}

func TestDatasetConnector_ClientErrorFailsFast(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "InvalidParameterValue: CQL_FILTER", http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	conn := NewBuildingsConnector(NewClient(cfg.Timeout), cfg)

	boundary, err := geo.ParseFeatureCollection([]byte(boundaryResponse), domain.CRSETRS89UTM33)
	require.NoError(t, err)

	_, err = conn.Fetch(context.Background(), boundary)
	require.Error(t, err)
	assert.ErrorIs(t, err, connectors.ErrInvalidParameter)
	assert.Equal(t, 1, calls, "client errors must not be retried")
}

func TestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("REQUEST") == "GetCapabilities" {
			w.Write([]byte(`<wfs:WFS_Capabilities version="2.0.0"/>`))
			return
		}
		http.Error(w, "unexpected", http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	conn := NewBoundaryConnector(NewClient(cfg.Timeout), cfg)
	assert.True(t, conn.TestConnection(context.Background()))

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer down.Close()

	cfgDown := testConfig(down.URL)
	connDown := NewBuildingsConnector(NewClient(cfgDown.Timeout), cfgDown)
	assert.False(t, connDown.TestConnection(context.Background()))
}
