package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect acquisition jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all jobs, newest first",
	RunE:  runJobsList,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one job in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

func init() {
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsShowCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	if jobStore == nil {
		return errors.New("job store not configured")
	}

	jobs, err := jobStore.List(context.Background())
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		cmd.Println("No jobs yet.")
		return nil
	}

	for _, job := range jobs {
		cmd.Printf("%s  %-10s  %-26s  %s\n",
			job.ID, job.Status, job.District, job.CreatedAt.Local().Format(time.RFC3339))
	}
	return nil
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	if jobStore == nil {
		return errors.New("job store not configured")
	}

	job, err := jobStore.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:        %s\n", job.ID)
	cmd.Printf("Status:    %s\n", job.Status)
	cmd.Printf("District:  %s\n", job.District)
	cmd.Printf("Datasets:  %s\n", strings.Join(datasetNames(job.Datasets), ", "))
	cmd.Printf("Progress:  %d%%\n", job.Progress)
	cmd.Printf("Created:   %s\n", job.CreatedAt.Local().Format(time.RFC3339))
	cmd.Printf("Updated:   %s\n", job.UpdatedAt.Local().Format(time.RFC3339))
	if job.PackagePath != "" {
		cmd.Printf("Package:   %s\n", job.PackagePath)
	}
	if job.ErrorMessage != "" {
		cmd.Printf("Error:     %s\n", job.ErrorMessage)
	}
	if job.Status == domain.JobFailed && job.ErrorMessage == "" {
		cmd.Println("Error:     (no message recorded)")
	}
	return nil
}
