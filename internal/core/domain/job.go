package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a processing job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job tracks one geodata request from submission to the finished package.
type Job struct {
	ID       string
	Status   JobStatus
	District District
	Datasets []DatasetType
	// Progress is a coarse percentage in [0, 100].
	Progress     int
	ErrorMessage string
	// PackagePath points at the exported package once the job completed.
	PackagePath string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewJob creates a pending job for the given request.
func NewJob(district District, datasets []DatasetType) Job {
	now := time.Now().UTC()
	return Job{
		ID:        uuid.NewString(),
		Status:    JobPending,
		District:  district,
		Datasets:  datasets,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTerminal reports whether the job reached a final state.
func (j Job) IsTerminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}
