package services

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

func harmonizedFixture(t *testing.T) (domain.HarmonizedCollection, domain.QualityStats) {
	t.Helper()
	boundary := okResult(domain.DatasetDistrictBoundaries, domain.SourceGeoportal, pankowBoundary(t))
	stops := okResult(domain.DatasetTransitStops, domain.SourceOSM, wgs84Stops(t))

	hc, stats, err := NewHarmonizationService().Harmonize(domain.DistrictPankow,
		[]domain.AcquisitionResult{boundary, stops})
	require.NoError(t, err)
	return hc, stats
}

func readZipEntry(t *testing.T, zr *zip.ReadCloser, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("entry %s not found in archive", name)
	return ""
}

func TestCreatePackage(t *testing.T) {
	hc, stats := harmonizedFixture(t)

	dir := t.TempDir()
	path, err := NewPackageService(dir).CreatePackage(hc, stats)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "pankow_"))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "data/bezirksgrenzen.geojson")
	assert.Contains(t, names, "data/oepnv_haltestellen.geojson")
	assert.Contains(t, names, "metadata.md")
	assert.Contains(t, names, "LICENSE-geoportal.txt")
	assert.Contains(t, names, "LICENSE-osm.txt")

	report := readZipEntry(t, zr, "metadata.md")
	assert.Contains(t, report, "# Geodatenpaket Pankow")
	assert.Contains(t, report, "EPSG:25833")
	assert.Contains(t, report, "Gesamtbewertung")

	stopsGeoJSON := readZipEntry(t, zr, "data/oepnv_haltestellen.geojson")
	assert.Contains(t, stopsGeoJSON, `"FeatureCollection"`)
	assert.Contains(t, stopsGeoJSON, `"oepnv_haltestellen"`)

	osmLicense := readZipEntry(t, zr, "LICENSE-osm.txt")
	assert.Contains(t, osmLicense, "Open Database License")
}

func TestCreatePackage_EmptyCollection(t *testing.T) {
	_, err := NewPackageService(t.TempDir()).CreatePackage(domain.HarmonizedCollection{}, domain.QualityStats{})
	assert.ErrorIs(t, err, domain.ErrNoValidDatasets)
}

func TestDistrictSlug(t *testing.T) {
	assert.Equal(t, "pankow", districtSlug(domain.DistrictPankow))
	assert.Equal(t, "neukoelln", districtSlug(domain.DistrictNeukoelln))
	assert.Equal(t, "friedrichshain_kreuzberg", districtSlug(domain.DistrictFriedrichshainKreuzberg))
	assert.Equal(t, "treptow_koepenick", districtSlug(domain.DistrictTreptowKoepenick))
}
