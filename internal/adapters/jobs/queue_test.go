package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"lastmile-routing-engine/internal/domain"
)

func testQueue(t *testing.T) (*Queue, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// Broker and result backend share one server here, as dev deployments do.
	return NewQueue(client, client), mr, client
}

func testRequest() domain.OptimizeRequest {
	return domain.OptimizeRequest{
		DepotID:    1,
		VehicleIDs: []int64{2, 3},
		StopIDs:    []int64{4, 5, 6},
		Date:       "2026-03-01",
	}
}

func TestEnqueueSeedsQueuedStatus(t *testing.T) {
	q, mr, client := testQueue(t)
	ctx := context.Background()

	jobID, err := q.Enqueue(ctx, testRequest())
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	status, err := q.Status(ctx, jobID)
	require.NoError(t, err)
	require.Equal(t, domain.JobQueued, status.State)
	require.Nil(t, status.Result)

	llen, err := client.LLen(ctx, queueKey).Result()
	require.NoError(t, err)
	require.EqualValues(t, 1, llen)

	// Status keys expire so stale jobs do not pile up in the backend.
	require.Equal(t, resultTTL, mr.TTL(resultKey(jobID)))
}

func TestStatusUnknownJobReadsAsQueued(t *testing.T) {
	q, _, _ := testQueue(t)

	status, err := q.Status(context.Background(), "never-enqueued")
	require.NoError(t, err)
	require.Equal(t, domain.JobQueued, status.State)
}

func TestDequeueRoundTripsEnvelope(t *testing.T) {
	q, _, _ := testQueue(t)
	ctx := context.Background()

	req := testRequest()
	jobID, err := q.Enqueue(ctx, req)
	require.NoError(t, err)

	env, err := q.dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.Equal(t, jobID, env.ID)
	require.Equal(t, req, env.Request)
}

func TestPoolRunsJobToDone(t *testing.T) {
	q, _, _ := testQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	want := &domain.OptimizeResult{
		RouteIDs:        []int64{11, 12},
		TotalDistanceKm: 8,
		NumRoutes:       2,
		Score:           domain.Score{TotalDistanceKm: 8, NumRoutes: 2, AvgStopsPerRoute: 1.5},
	}

	jobID, err := q.Enqueue(ctx, testRequest())
	require.NoError(t, err)

	pool := &Pool{
		Queue: q,
		Run: func(context.Context, domain.OptimizeRequest) (*domain.OptimizeResult, error) {
			return want, nil
		},
		Workers: 1,
	}

	done := make(chan error, 1)
	go func() { done <- pool.Serve(ctx) }()

	require.Eventually(t, func() bool {
		status, err := q.Status(context.Background(), jobID)
		return err == nil && status.State == domain.JobDone
	}, 5*time.Second, 20*time.Millisecond)

	status, err := q.Status(context.Background(), jobID)
	require.NoError(t, err)
	require.NotNil(t, status.Result)
	require.Equal(t, want.RouteIDs, status.Result.RouteIDs)
	require.Equal(t, want.NumRoutes, status.Result.NumRoutes)
	require.Empty(t, status.Error)

	cancel()
	require.NoError(t, <-done)
}

func TestPoolSurfacesJobFailure(t *testing.T) {
	q, _, _ := testQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobID, err := q.Enqueue(ctx, testRequest())
	require.NoError(t, err)

	pool := &Pool{
		Queue: q,
		Run: func(context.Context, domain.OptimizeRequest) (*domain.OptimizeResult, error) {
			return nil, errors.New("optimize: load depot 1: not found")
		},
		Workers: 1,
	}

	done := make(chan error, 1)
	go func() { done <- pool.Serve(ctx) }()

	require.Eventually(t, func() bool {
		status, err := q.Status(context.Background(), jobID)
		return err == nil && status.State == domain.JobFailed
	}, 5*time.Second, 20*time.Millisecond)

	status, err := q.Status(context.Background(), jobID)
	require.NoError(t, err)
	require.Equal(t, "optimize: load depot 1: not found", status.Error)
	require.Nil(t, status.Result)

	cancel()
	require.NoError(t, <-done)
}

func TestPoolDrainsMultipleJobs(t *testing.T) {
	q, _, _ := testQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ids []string
	for i := 0; i < 5; i++ {
		id, err := q.Enqueue(ctx, testRequest())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	pool := &Pool{
		Queue: q,
		Run: func(context.Context, domain.OptimizeRequest) (*domain.OptimizeResult, error) {
			return &domain.OptimizeResult{NumRoutes: 1}, nil
		},
		Workers: 3,
	}

	done := make(chan error, 1)
	go func() { done <- pool.Serve(ctx) }()

	require.Eventually(t, func() bool {
		for _, id := range ids {
			status, err := q.Status(context.Background(), id)
			if err != nil || status.State != domain.JobDone {
				return false
			}
		}
		return true
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
