package obs

import (
	"context"
	"fmt"
	"log"
	"time"
)

type ctxKey string

const (
	// RequestIDKey scopes log lines emitted on the HTTP path.
	RequestIDKey ctxKey = "req_id"
	// JobIDKey scopes log lines emitted inside a worker job.
	JobIDKey ctxKey = "job_id"
)

// WithRequestID tags a context with the request id middleware assigned.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithJobID tags a context with the job id a worker is running under.
func WithJobID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, JobIDKey, id)
}

// scope renders the identity prefix for a log line: the job id inside a
// worker, the request id on the HTTP path, an empty req_id otherwise.
func scope(ctx context.Context) string {
	if jobID, ok := ctx.Value(JobIDKey).(string); ok {
		return fmt.Sprintf("job_id=%s", jobID)
	}
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return fmt.Sprintf("req_id=%s", reqID)
}

// Time logs the duration of an operation when the returned func runs,
// typically via defer. Pass the address of a named error return to include
// the outcome:
//
//	func (s *Store) Save(ctx context.Context) (err error) {
//		defer obs.Time(ctx, "store.Save")(&err)
//		...
//	}
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	id := scope(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("%s op=%s dur=%dms err=%v", id, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("%s op=%s dur=%dms", id, name, dur.Milliseconds())
	}
}
