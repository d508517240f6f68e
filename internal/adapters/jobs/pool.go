package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/platform/obs"
)

// popTimeout bounds each broker poll so workers notice shutdown promptly.
const popTimeout = 2 * time.Second

// Runner executes one optimization job. The worker binary wires this to the
// optimizer service; tests substitute stubs.
type Runner func(ctx context.Context, req domain.OptimizeRequest) (*domain.OptimizeResult, error)

// Pool consumes the broker queue with a fixed set of workers. Each worker
// owns one job at a time: it marks the job started, runs the full pipeline,
// and records done or failed in the result backend. A job failure never
// takes a worker down.
type Pool struct {
	Queue   *Queue
	Run     Runner
	Workers int
}

// Serve blocks, running the workers until ctx is cancelled. Jobs already
// dispatched to a worker run to completion even during shutdown; only the
// broker polling stops.
func (p *Pool) Serve(ctx context.Context) error {
	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 1; i <= workers; i++ {
		worker := i
		g.Go(func() error {
			return p.workerLoop(ctx, worker)
		})
	}
	return g.Wait()
}

func (p *Pool) workerLoop(ctx context.Context, worker int) error {
	log.Printf("worker=%d state=ready", worker)

	for {
		env, err := p.Queue.dequeue(ctx, popTimeout)
		if errors.Is(err, redis.Nil) {
			continue // quiet queue, poll again
		}
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("worker=%d state=stopped", worker)
				return nil
			}
			// Transient broker trouble: back off and keep serving rather
			// than tearing the pool down.
			log.Printf("worker=%d dequeue failed err=%v", worker, err)
			select {
			case <-ctx.Done():
				log.Printf("worker=%d state=stopped", worker)
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		p.process(ctx, worker, env)
	}
}

// process runs one job start to finish. Dispatched jobs are not cancellable:
// the job context survives pool shutdown so an in-flight solve still commits
// and records its outcome.
func (p *Pool) process(ctx context.Context, worker int, env jobEnvelope) {
	jobCtx := obs.WithJobID(context.WithoutCancel(ctx), env.ID)
	start := time.Now()

	if err := p.Queue.markStarted(jobCtx, env.ID); err != nil {
		log.Printf("worker=%d job_id=%s mark started failed err=%v", worker, env.ID, err)
	}

	result, err := p.Run(jobCtx, env.Request)
	if err != nil {
		log.Printf("worker=%d job_id=%s state=failed dur=%dms err=%v",
			worker, env.ID, time.Since(start).Milliseconds(), err)
		if markErr := p.Queue.markFailed(jobCtx, env.ID, err.Error()); markErr != nil {
			log.Printf("worker=%d job_id=%s mark failed failed err=%v", worker, env.ID, markErr)
		}
		return
	}

	if err := p.Queue.markDone(jobCtx, env.ID, result); err != nil {
		log.Printf("worker=%d job_id=%s mark done failed err=%v", worker, env.ID, err)
		return
	}
	log.Printf("worker=%d job_id=%s state=done routes=%d dur=%dms",
		worker, env.ID, result.NumRoutes, time.Since(start).Milliseconds())
}
