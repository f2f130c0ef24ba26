// Package cli implements the urbaniq command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/urbaniq/urbaniq-cli/internal/core/ports/driven"
	"github.com/urbaniq/urbaniq-cli/internal/core/services"
	"github.com/urbaniq/urbaniq-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services wired in by main before Execute runs.
var (
	acquisitionService   *services.AcquisitionService
	harmonizationService *services.HarmonizationService
	packageService       *services.PackageService
	jobStore             driven.JobStore
)

var rootCmd = &cobra.Command{
	Use:   "urbaniq",
	Short: "Acquire and harmonize Berlin geodata",
	Long: `urbanIQ downloads official Berlin geodata (district boundaries, building
footprints, cycling network) and OpenStreetMap transit stops for one district,
harmonizes them into a single coordinate system and schema, and packages the
result as a ready-to-use zip archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Wire injects the service implementations the commands run against.
func Wire(acq *services.AcquisitionService, harm *services.HarmonizationService, pkg *services.PackageService, jobs driven.JobStore) {
	acquisitionService = acq
	harmonizationService = harm
	packageService = pkg
	jobStore = jobs
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
