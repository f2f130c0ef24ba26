package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

var (
	acquireDistrict string
	acquireDatasets []string
)

var acquireCmd = &cobra.Command{
	Use:   "acquire",
	Short: "Download and package geodata for one district",
	Long: `Downloads the requested datasets for a Berlin district, harmonizes them
into EPSG:25833 with a unified schema, and writes a zip package.

The district boundary is always included. Part-names like "kreuzberg" resolve
to their combined district.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().StringVarP(&acquireDistrict, "district", "d", "", "Berlin district name (required)")
	acquireCmd.Flags().StringSliceVar(&acquireDatasets, "datasets", nil,
		"datasets to fetch (default: all requestable datasets)")
	_ = acquireCmd.MarkFlagRequired("district")
	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, _ []string) error {
	district, err := domain.NormalizeDistrict(acquireDistrict)
	if err != nil {
		return err
	}

	datasets, err := resolveDatasets(acquireDatasets)
	if err != nil {
		return err
	}

	if acquisitionService == nil || harmonizationService == nil || packageService == nil || jobStore == nil {
		return errors.New("acquisition pipeline not configured")
	}

	ctx := context.Background()

	job := domain.NewJob(district, datasets)
	if err := jobStore.Save(ctx, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	cmd.Printf("Job %s: acquiring %s for %s...\n", job.ID, strings.Join(datasetNames(datasets), ", "), district)

	if err := runPipeline(ctx, cmd, &job); err != nil {
		job.Status = domain.JobFailed
		job.ErrorMessage = err.Error()
		job.UpdatedAt = time.Now().UTC()
		if updateErr := jobStore.Update(ctx, job); updateErr != nil {
			return fmt.Errorf("%w (job update also failed: %v)", err, updateErr)
		}
		return err
	}

	cmd.Printf("Package ready: %s\n", job.PackagePath)
	return nil
}

// runPipeline drives one job through acquisition, harmonization and
// packaging, persisting progress along the way.
func runPipeline(ctx context.Context, cmd *cobra.Command, job *domain.Job) error {
	advance := func(status domain.JobStatus, progress int) error {
		job.Status = status
		job.Progress = progress
		job.UpdatedAt = time.Now().UTC()
		return jobStore.Update(ctx, *job)
	}

	if err := advance(domain.JobProcessing, 10); err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	results, err := acquisitionService.Acquire(ctx, job.District, job.Datasets)
	if err != nil {
		return fmt.Errorf("acquisition failed: %w", err)
	}
	for _, res := range results {
		if res.OK() {
			cmd.Printf("  %-20s %6d features  (%.0f%% coverage)\n",
				res.Dataset, res.Stats.FeatureCount, res.Stats.CoveragePercentage)
		} else {
			cmd.Printf("  %-20s FAILED: %s\n", res.Dataset, res.Stats.ErrorMessage)
		}
	}
	if err := advance(domain.JobProcessing, 60); err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	harmonized, stats, err := harmonizationService.Harmonize(job.District, results)
	if err != nil {
		return fmt.Errorf("harmonization failed: %w", err)
	}
	cmd.Printf("Harmonized %d features, quality score %.2f\n", harmonized.Count(), stats.OverallScore)
	if err := advance(domain.JobProcessing, 85); err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	path, err := packageService.CreatePackage(harmonized, stats)
	if err != nil {
		return fmt.Errorf("packaging failed: %w", err)
	}

	job.PackagePath = path
	return advance(domain.JobCompleted, 100)
}

// resolveDatasets parses the --datasets flag, defaulting to every
// requestable dataset.
func resolveDatasets(names []string) ([]domain.DatasetType, error) {
	if len(names) == 0 {
		return append([]domain.DatasetType(nil), domain.RequestableDatasets...), nil
	}
	datasets := make([]domain.DatasetType, 0, len(names))
	for _, name := range names {
		dt, err := domain.ParseDatasetType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dt)
	}
	return datasets, nil
}

func datasetNames(datasets []domain.DatasetType) []string {
	names := make([]string, len(datasets))
	for i, dt := range datasets {
		names[i] = string(dt)
	}
	return names
}
