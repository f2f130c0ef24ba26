package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestJobStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	jobs := store.JobStore()
	ctx := context.Background()

	job := domain.NewJob(domain.DistrictPankow,
		[]domain.DatasetType{domain.DatasetBuildings, domain.DatasetTransitStops})
	require.NoError(t, jobs.Save(ctx, job))

	got, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, domain.JobPending, got.Status)
	assert.Equal(t, domain.DistrictPankow, got.District)
	assert.Equal(t, job.Datasets, got.Datasets)
	assert.WithinDuration(t, job.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestJobStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.JobStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobStore_Update(t *testing.T) {
	store := newTestStore(t)
	jobs := store.JobStore()
	ctx := context.Background()

	job := domain.NewJob(domain.DistrictMitte, []domain.DatasetType{domain.DatasetBuildings})
	require.NoError(t, jobs.Save(ctx, job))

	job.Status = domain.JobCompleted
	job.Progress = 100
	job.PackagePath = "/data/mitte_abc123.zip"
	job.UpdatedAt = time.Now().UTC()
	require.NoError(t, jobs.Update(ctx, job))

	got, err := jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, "/data/mitte_abc123.zip", got.PackagePath)
	assert.True(t, got.IsTerminal())
}

func TestJobStore_UpdateNotFound(t *testing.T) {
	store := newTestStore(t)
	job := domain.NewJob(domain.DistrictMitte, []domain.DatasetType{domain.DatasetBuildings})
	err := store.JobStore().Update(context.Background(), job)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	jobs := store.JobStore()
	ctx := context.Background()

	older := domain.NewJob(domain.DistrictMitte, []domain.DatasetType{domain.DatasetBuildings})
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := domain.NewJob(domain.DistrictPankow, []domain.DatasetType{domain.DatasetTransitStops})

	require.NoError(t, jobs.Save(ctx, older))
	require.NoError(t, jobs.Save(ctx, newer))

	list, err := jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	job := domain.NewJob(domain.DistrictSpandau, []domain.DatasetType{domain.DatasetCyclingNetwork})
	require.NoError(t, store.JobStore().Save(ctx, job))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.JobStore().Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
}
