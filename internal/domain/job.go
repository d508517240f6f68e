package domain

// Job lifecycle states surfaced by the status endpoint. Jobs never seen by
// the broker report JobQueued, so polling a stale or foreign id stays safe.
const (
	JobQueued  = "queued"
	JobStarted = "started"
	JobDone    = "done"
	JobFailed  = "failed"
)

// OptimizeRequest is the queue payload for one optimization job. Date is the
// service date as "2006-01-02"; it is parsed by the worker so a malformed
// date fails the job rather than the enqueue.
type OptimizeRequest struct {
	DepotID    int64   `json:"depot_id"`
	VehicleIDs []int64 `json:"vehicle_ids"`
	StopIDs    []int64 `json:"stop_ids"`
	Date       string  `json:"date"`
}

// OptimizeResult is the stored outcome of a finished job.
type OptimizeResult struct {
	RouteIDs         []int64 `json:"route_ids"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	GreedyDistanceKm float64 `json:"greedy_distance_km"`
	ImprovementPct   float64 `json:"improvement_pct"`
	NumRoutes        int     `json:"num_routes"`
	Score            Score   `json:"score"`
}

// JobStatus is what the status endpoint reports for a job id.
type JobStatus struct {
	State  string          `json:"status"`
	Result *OptimizeResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}
