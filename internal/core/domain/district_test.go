package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDistrict(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  District
	}{
		{"exact match", "Pankow", DistrictPankow},
		{"case insensitive", "pankow", DistrictPankow},
		{"surrounding whitespace", "  Mitte  ", DistrictMitte},
		{"part name kreuzberg", "Kreuzberg", DistrictFriedrichshainKreuzberg},
		{"part name wilmersdorf", "wilmersdorf", DistrictCharlottenburg},
		{"ascii umlaut variant", "Neukoelln", DistrictNeukoelln},
		{"full hyphenated name", "Treptow-Köpenick", DistrictTreptowKoepenick},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDistrict(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDistrict_Unknown(t *testing.T) {
	for _, input := range []string{"", "Hamburg", "Pankow-Nord"} {
		_, err := NormalizeDistrict(input)
		assert.ErrorIs(t, err, ErrUnknownDistrict, "input %q", input)
	}
}

func TestAllDistricts_Count(t *testing.T) {
	assert.Len(t, AllDistricts, 12)
}
