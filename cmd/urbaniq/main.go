// Command urbaniq is the Berlin geodata acquisition CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	configfile "github.com/urbaniq/urbaniq-cli/internal/adapters/driven/config/file"
	"github.com/urbaniq/urbaniq-cli/internal/adapters/driven/storage/sqlite"
	"github.com/urbaniq/urbaniq-cli/internal/adapters/driving/cli"
	"github.com/urbaniq/urbaniq-cli/internal/connectors/geoportal"
	"github.com/urbaniq/urbaniq-cli/internal/connectors/overpass"
	"github.com/urbaniq/urbaniq-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := configStore.Config()

	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve data directory: %w", err)
		}
		dataDir = filepath.Join(home, ".urbaniq", "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open job database: %w", err)
	}
	defer store.Close()

	geoCfg := geoportalConfig(cfg.Geoportal)
	client := geoportal.NewClient(geoCfg.Timeout)

	acquisition := services.NewAcquisitionService(
		geoportal.NewBoundaryConnector(client, geoCfg),
		geoportal.NewBuildingsConnector(client, geoCfg),
		geoportal.NewCyclingConnector(client, geoCfg),
		overpass.New(overpassConfig(cfg.Overpass)),
	)

	cli.Wire(
		acquisition,
		services.NewHarmonizationService(),
		services.NewPackageService(filepath.Join(dataDir, "packages")),
		store.JobStore(),
	)

	return cli.Execute()
}

// geoportalConfig merges the file configuration over the built-in defaults.
func geoportalConfig(c configfile.GeoportalConfig) geoportal.Config {
	cfg := geoportal.DefaultConfig()
	if c.BoundaryEndpoint != "" {
		cfg.BoundaryEndpoint = c.BoundaryEndpoint
	}
	if c.BoundaryLayer != "" {
		cfg.BoundaryLayer = c.BoundaryLayer
	}
	if c.BuildingsEndpoint != "" {
		cfg.BuildingsEndpoint = c.BuildingsEndpoint
	}
	if c.BuildingsLayer != "" {
		cfg.BuildingsLayer = c.BuildingsLayer
	}
	if c.CyclingEndpoint != "" {
		cfg.CyclingEndpoint = c.CyclingEndpoint
	}
	if c.CyclingLayer != "" {
		cfg.CyclingLayer = c.CyclingLayer
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	return cfg
}

func overpassConfig(c configfile.OverpassConfig) overpass.Config {
	cfg := overpass.DefaultConfig()
	if c.Endpoint != "" {
		cfg.Endpoint = c.Endpoint
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	return cfg
}
