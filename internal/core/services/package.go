package services

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/geo"
	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

// PackageService assembles a harmonized district dataset into a distributable
// zip archive: one GeoJSON file per dataset plus a metadata report and the
// license texts of every contributing source.
type PackageService struct {
	dataDir string
}

// NewPackageService creates a package service writing archives below dataDir.
func NewPackageService(dataDir string) *PackageService {
	return &PackageService{dataDir: dataDir}
}

// CreatePackage writes the archive and returns its path. The archive name
// embeds the district and a fresh package ID so repeated runs never collide.
func (s *PackageService) CreatePackage(hc domain.HarmonizedCollection, stats domain.QualityStats) (string, error) {
	if hc.Count() == 0 {
		return "", domain.ErrNoValidDatasets
	}
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}

	packageID := uuid.NewString()
	name := fmt.Sprintf("%s_%s.zip", districtSlug(hc.District), packageID[:8])
	path := filepath.Join(s.dataDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create package: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	// 1. One GeoJSON file per dataset, in stable order.
	byDataset := groupByDataset(hc)
	for _, dt := range sortedDatasets(byDataset) {
		data, err := geo.MarshalHarmonized(byDataset[dt])
		if err != nil {
			zw.Close()
			return "", fmt.Errorf("encode %s: %w", dt, err)
		}
		if err := writeZipEntry(zw, fmt.Sprintf("data/%s.geojson", dt), data); err != nil {
			zw.Close()
			return "", err
		}
	}

	// 2. Human-readable report.
	report := renderMetadata(packageID, hc, stats)
	if err := writeZipEntry(zw, "metadata.md", []byte(report)); err != nil {
		zw.Close()
		return "", err
	}

	// 3. License texts per contributing source.
	for source, text := range licenseTexts(hc) {
		entry := fmt.Sprintf("LICENSE-%s.txt", source)
		if err := writeZipEntry(zw, entry, []byte(text)); err != nil {
			zw.Close()
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalize package: %w", err)
	}

	logger.Info("Package written to %s", path)
	return path, nil
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// groupByDataset splits the harmonized features back into per-dataset slices
// for export.
func groupByDataset(hc domain.HarmonizedCollection) map[domain.DatasetType][]domain.StandardizedFeature {
	out := make(map[domain.DatasetType][]domain.StandardizedFeature)
	for _, f := range hc.Features {
		out[f.Dataset] = append(out[f.Dataset], f)
	}
	// Datasets that harmonized to zero features still get an (empty) file so
	// the package inventory matches the request.
	for dt := range hc.CountsByDataset {
		if _, ok := out[dt]; !ok {
			out[dt] = nil
		}
	}
	return out
}

func sortedDatasets(m map[domain.DatasetType][]domain.StandardizedFeature) []domain.DatasetType {
	keys := make([]domain.DatasetType, 0, len(m))
	for dt := range m {
		keys = append(keys, dt)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// renderMetadata builds the markdown report shipped inside every package.
func renderMetadata(packageID string, hc domain.HarmonizedCollection, stats domain.QualityStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Geodatenpaket %s\n\n", hc.District)
	fmt.Fprintf(&b, "- Paket-ID: %s\n", packageID)
	fmt.Fprintf(&b, "- Erstellt: %s\n", time.Now().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Koordinatensystem: %s\n", hc.CRS)
	fmt.Fprintf(&b, "- Features gesamt: %d\n\n", hc.Count())

	b.WriteString("## Datensätze\n\n")
	counts := make([]domain.DatasetType, 0, len(hc.CountsByDataset))
	for dt := range hc.CountsByDataset {
		counts = append(counts, dt)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i] < counts[j] })
	for _, dt := range counts {
		desc, _ := domain.Descriptor(dt)
		fmt.Fprintf(&b, "### %s\n\n", desc.Name)
		fmt.Fprintf(&b, "- Datei: data/%s.geojson\n", dt)
		fmt.Fprintf(&b, "- Features: %d\n", hc.CountsByDataset[dt])
		fmt.Fprintf(&b, "- Quelle: %s\n", desc.Attribution)
		fmt.Fprintf(&b, "- Lizenz: %s\n", desc.License)
		fmt.Fprintf(&b, "- Aktualisierung: %s\n\n", desc.UpdateFrequency)
	}

	b.WriteString("## Qualität\n\n")
	fmt.Fprintf(&b, "- Geometrien gültig: %.1f%%\n", stats.GeometryValidity*100)
	fmt.Fprintf(&b, "- Attribute vollständig: %.1f%%\n", stats.AttributeCompleteness*100)
	fmt.Fprintf(&b, "- Räumliche Abdeckung: %.1f%%\n", stats.SpatialCoverage)
	fmt.Fprintf(&b, "- Verworfene Geometrien: %d\n", stats.DroppedGeometries)
	fmt.Fprintf(&b, "- Übersprungene Datensätze: %d\n", stats.SkippedDatasets)
	fmt.Fprintf(&b, "- Gesamtbewertung: %.2f\n", stats.OverallScore)

	return b.String()
}

// licenseTexts collects one license notice per contributing source system.
func licenseTexts(hc domain.HarmonizedCollection) map[domain.SourceSystem]string {
	out := make(map[domain.SourceSystem]string)
	seen := make(map[domain.DatasetType]bool)
	for _, f := range hc.Features {
		if seen[f.Dataset] {
			continue
		}
		seen[f.Dataset] = true
		desc, ok := domain.Descriptor(f.Dataset)
		if !ok {
			continue
		}
		notice := fmt.Sprintf("%s\nLizenz: %s\nQuelle: %s\n\n", desc.Name, desc.License, desc.Attribution)
		out[f.Source] += notice
	}
	return out
}

// districtSlug turns a district name into a filesystem-friendly token.
func districtSlug(d domain.District) string {
	s := strings.ToLower(string(d))
	replacer := strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		" ", "_", "-", "_",
	)
	return replacer.Replace(s)
}
