package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lastmile-routing-engine/internal/domain"
)

const (
	// queueKey is the broker list workers block on.
	queueKey = "lastmile:optimize:queue"
	// resultKeyPrefix namespaces per-job status keys in the result backend.
	resultKeyPrefix = "lastmile:optimize:result:"
	// resultTTL bounds how long a finished job stays pollable.
	resultTTL = 24 * time.Hour
)

// jobEnvelope is the broker payload for one job: the id the submitter polls
// with plus the request the worker executes.
type jobEnvelope struct {
	ID      string                 `json:"id"`
	Request domain.OptimizeRequest `json:"request"`
}

// Queue implements ports.JobQueue on Redis: a list as the broker and
// per-job keys as the result backend. Broker and results may live on
// separate Redis databases, mirroring the legacy deployment's split
// broker/backend URLs; pass the same client twice to colocate them.
type Queue struct {
	broker  *redis.Client
	results *redis.Client
}

func NewQueue(broker, results *redis.Client) *Queue {
	return &Queue{broker: broker, results: results}
}

func resultKey(jobID string) string {
	return resultKeyPrefix + jobID
}

// Enqueue assigns a job id, seeds its status as queued, and pushes the job
// onto the broker list. The status is written before the push so a fast
// worker's "started" can never be overwritten by the submit path.
func (q *Queue) Enqueue(ctx context.Context, req domain.OptimizeRequest) (string, error) {
	jobID := uuid.NewString()

	if err := q.setStatus(ctx, jobID, domain.JobStatus{State: domain.JobQueued}); err != nil {
		return "", fmt.Errorf("enqueue job: %w", err)
	}

	payload, err := json.Marshal(jobEnvelope{ID: jobID, Request: req})
	if err != nil {
		return "", fmt.Errorf("enqueue job: marshal envelope: %w", err)
	}
	if err := q.broker.LPush(ctx, queueKey, payload).Err(); err != nil {
		return "", fmt.Errorf("enqueue job: push to broker: %w", err)
	}

	return jobID, nil
}

// Status reports the job's current state. Ids the backend has never seen
// (or whose result expired) read as queued: the legacy result backend could
// not tell unknown from not-yet-started, and pollers depend on that.
func (q *Queue) Status(ctx context.Context, jobID string) (domain.JobStatus, error) {
	raw, err := q.results.Get(ctx, resultKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.JobStatus{State: domain.JobQueued}, nil
	}
	if err != nil {
		return domain.JobStatus{}, fmt.Errorf("job status %s: %w", jobID, err)
	}

	var status domain.JobStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return domain.JobStatus{}, fmt.Errorf("job status %s: decode: %w", jobID, err)
	}
	return status, nil
}

// dequeue blocks on the broker list for up to timeout and returns one job.
// A quiet queue returns redis.Nil so callers can re-check their context.
func (q *Queue) dequeue(ctx context.Context, timeout time.Duration) (jobEnvelope, error) {
	var env jobEnvelope

	vals, err := q.broker.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		return env, err
	}
	// BRPOP answers [key, value].
	if len(vals) != 2 {
		return env, fmt.Errorf("dequeue job: unexpected BRPOP reply of %d values", len(vals))
	}

	if err := json.Unmarshal([]byte(vals[1]), &env); err != nil {
		return env, fmt.Errorf("dequeue job: decode envelope: %w", err)
	}
	return env, nil
}

func (q *Queue) setStatus(ctx context.Context, jobID string, status domain.JobStatus) error {
	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}
	if err := q.results.Set(ctx, resultKey(jobID), payload, resultTTL).Err(); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

func (q *Queue) markStarted(ctx context.Context, jobID string) error {
	return q.setStatus(ctx, jobID, domain.JobStatus{State: domain.JobStarted})
}

func (q *Queue) markDone(ctx context.Context, jobID string, result *domain.OptimizeResult) error {
	return q.setStatus(ctx, jobID, domain.JobStatus{State: domain.JobDone, Result: result})
}

func (q *Queue) markFailed(ctx context.Context, jobID string, cause string) error {
	return q.setStatus(ctx, jobID, domain.JobStatus{State: domain.JobFailed, Error: cause})
}
