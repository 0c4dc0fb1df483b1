package scheduler

import "context"

// Job is a unit of work run by the worker pool.
type Job interface {
	// Execute runs the job. ctx carries the per-job timeout.
	Execute(ctx context.Context) error

	// UserID returns the user whose data the job processes.
	UserID() int64

	// Description is used in logs and span attributes.
	Description() string
}
