package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

func TestAcquireCmd_UnknownDistrict(t *testing.T) {
	_, err := execute(t, "acquire", "--district", "atlantis")
	assert.ErrorIs(t, err, domain.ErrUnknownDistrict)
}

func TestResolveDatasets_Default(t *testing.T) {
	datasets, err := resolveDatasets(nil)
	assert.NoError(t, err)
	assert.Equal(t, domain.RequestableDatasets, datasets)
}

func TestResolveDatasets_Explicit(t *testing.T) {
	datasets, err := resolveDatasets([]string{"gebaeude", " oepnv_haltestellen "})
	assert.NoError(t, err)
	assert.Equal(t, []domain.DatasetType{domain.DatasetBuildings, domain.DatasetTransitStops}, datasets)
}

func TestResolveDatasets_Unknown(t *testing.T) {
	_, err := resolveDatasets([]string{"parkbaenke"})
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

func TestResolveDatasets_BoundaryRejected(t *testing.T) {
	// --datasets bezirksgrenzen must fail before any network call rather
	// than acquiring a boundary-only package.
	_, err := resolveDatasets([]string{"bezirksgrenzen"})
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}
