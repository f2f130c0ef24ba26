package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to all data sources",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if acquisitionService == nil {
		return errors.New("acquisition pipeline not configured")
	}

	health := acquisitionService.TestHealth(context.Background())

	datasets := make([]domain.DatasetType, 0, len(health))
	for dt := range health {
		datasets = append(datasets, dt)
	}
	sort.Slice(datasets, func(i, j int) bool { return datasets[i] < datasets[j] })

	allUp := true
	for _, dt := range datasets {
		status := "ok"
		if !health[dt] {
			status = "UNREACHABLE"
			allUp = false
		}
		cmd.Printf("  %-20s %s\n", dt, status)
	}

	if !allUp {
		return errors.New("one or more data sources are unreachable")
	}
	return nil
}
