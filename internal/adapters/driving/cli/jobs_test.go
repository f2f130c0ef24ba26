package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbaniq/urbaniq-cli/internal/adapters/driven/storage/memory"
	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

func withJobStore(t *testing.T, store *memory.JobStore) {
	t.Helper()
	original := jobStore
	jobStore = store
	t.Cleanup(func() { jobStore = original })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestJobsListCmd_Empty(t *testing.T) {
	withJobStore(t, memory.NewJobStore())

	out, err := execute(t, "jobs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No jobs yet.")
}

func TestJobsListCmd(t *testing.T) {
	store := memory.NewJobStore()
	withJobStore(t, store)

	job := domain.NewJob(domain.DistrictPankow, []domain.DatasetType{domain.DatasetBuildings})
	require.NoError(t, store.Save(context.Background(), job))

	out, err := execute(t, "jobs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, job.ID)
	assert.Contains(t, out, "Pankow")
	assert.Contains(t, out, "pending")
}

func TestJobsShowCmd(t *testing.T) {
	store := memory.NewJobStore()
	withJobStore(t, store)

	job := domain.NewJob(domain.DistrictNeukoelln, []domain.DatasetType{domain.DatasetTransitStops})
	job.Status = domain.JobCompleted
	job.Progress = 100
	job.PackagePath = "/data/neukoelln_12345678.zip"
	require.NoError(t, store.Save(context.Background(), job))

	out, err := execute(t, "jobs", "show", job.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Neukölln")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "oepnv_haltestellen")
	assert.Contains(t, out, "/data/neukoelln_12345678.zip")
}

func TestJobsShowCmd_NotFound(t *testing.T) {
	withJobStore(t, memory.NewJobStore())

	_, err := execute(t, "jobs", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
