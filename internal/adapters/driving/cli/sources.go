package cli

import (
	"github.com/spf13/cobra"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List available datasets and their sources",
	Run:   runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) {
	all := append([]domain.DatasetType{domain.DatasetDistrictBoundaries}, domain.RequestableDatasets...)
	for _, dt := range all {
		desc, ok := domain.Descriptor(dt)
		if !ok {
			continue
		}
		cmd.Printf("%s\n", desc.Name)
		cmd.Printf("  id:          %s\n", desc.Type)
		cmd.Printf("  source:      %s\n", desc.Source)
		cmd.Printf("  license:     %s\n", desc.License)
		cmd.Printf("  attribution: %s\n", desc.Attribution)
		cmd.Printf("  updates:     %s\n\n", desc.UpdateFrequency)
	}
}
