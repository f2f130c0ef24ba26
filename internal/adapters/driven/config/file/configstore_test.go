package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	cfg := Config{
		DataDir: "/var/lib/urbaniq",
		Geoportal: GeoportalConfig{
			BoundaryEndpoint: "https://gdi.example.org/wfs/bezirke",
			TimeoutSeconds:   45,
		},
		Overpass: OverpassConfig{
			Endpoint:       "https://overpass.example.org/api/interpreter",
			TimeoutSeconds: 60,
		},
	}
	store.Set(cfg)
	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded.Config())
}

func TestConfigStore_MissingFileIsEmptyConfig(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Config{}, store.Config())
}

func TestConfigStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}
