package driven

import (
	"context"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// JobStore persists acquisition jobs across runs.
type JobStore interface {
	// Save inserts a new job.
	Save(ctx context.Context, job domain.Job) error

	// Get returns the job with the given ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.Job, error)

	// Update overwrites an existing job, or returns domain.ErrNotFound.
	Update(ctx context.Context, job domain.Job) error

	// List returns all jobs, newest first.
	List(ctx context.Context) ([]domain.Job, error)
}
