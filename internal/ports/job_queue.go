package ports

import (
	"context"

	"lastmile-routing-engine/internal/domain"
)

// Port: a boundary for handing optimization jobs to background workers and
// polling their outcome.
type JobQueue interface {
	// Enqueue submits a job and returns its id immediately.
	Enqueue(ctx context.Context, req domain.OptimizeRequest) (string, error)
	// Status reports the job's current state. Ids the broker has never
	// seen report JobQueued.
	Status(ctx context.Context, jobID string) (domain.JobStatus, error)
}
