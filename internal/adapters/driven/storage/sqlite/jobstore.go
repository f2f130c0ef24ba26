package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
	"github.com/urbaniq/urbaniq-cli/internal/core/ports/driven"
)

// jobStore implements driven.JobStore.
type jobStore struct {
	store *Store
}

var _ driven.JobStore = (*jobStore)(nil)

// Save inserts a new job.
func (s *jobStore) Save(ctx context.Context, job domain.Job) error {
	datasetsJSON, err := json.Marshal(job.Datasets)
	if err != nil {
		return fmt.Errorf("marshalling datasets: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO jobs (id, status, district, datasets, progress, error_message, package_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, job.ID, string(job.Status), string(job.District), string(datasetsJSON),
		job.Progress, job.ErrorMessage, job.PackagePath,
		job.CreatedAt.UTC().Format(time.RFC3339Nano), job.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	return nil
}

// Get returns the job with the given ID.
func (s *jobStore) Get(ctx context.Context, id string) (domain.Job, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, status, district, datasets, progress, error_message, package_path, created_at, updated_at
		FROM jobs WHERE id = ?
	`, id)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

// Update overwrites an existing job.
func (s *jobStore) Update(ctx context.Context, job domain.Job) error {
	datasetsJSON, err := json.Marshal(job.Datasets)
	if err != nil {
		return fmt.Errorf("marshalling datasets: %w", err)
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, district = ?, datasets = ?, progress = ?, error_message = ?, package_path = ?, updated_at = ?
		WHERE id = ?
	`, string(job.Status), string(job.District), string(datasetsJSON),
		job.Progress, job.ErrorMessage, job.PackagePath,
		job.UpdatedAt.UTC().Format(time.RFC3339Nano), job.ID)
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("job %s: %w", job.ID, domain.ErrNotFound)
	}
	return nil
}

// List returns all jobs, newest first.
func (s *jobStore) List(ctx context.Context) ([]domain.Job, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, status, district, datasets, progress, error_message, package_path, created_at, updated_at
		FROM jobs ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}
	return jobs, nil
}

// scanner abstracts over *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (domain.Job, error) {
	var (
		job          domain.Job
		status       string
		district     string
		datasetsJSON string
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(&job.ID, &status, &district, &datasetsJSON,
		&job.Progress, &job.ErrorMessage, &job.PackagePath, &createdAt, &updatedAt)
	if err != nil {
		return domain.Job{}, err
	}

	job.Status = domain.JobStatus(status)
	job.District = domain.District(district)

	if err := json.Unmarshal([]byte(datasetsJSON), &job.Datasets); err != nil {
		return domain.Job{}, fmt.Errorf("unmarshalling datasets: %w", err)
	}
	if job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return domain.Job{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if job.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return domain.Job{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return job, nil
}
