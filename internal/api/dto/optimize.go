package dto

import "lastmile-routing-engine/internal/domain"

type OptimizeRequest struct {
	DepotID    int64   `json:"depot_id"`
	VehicleIDs []int64 `json:"vehicle_ids"`
	StopIDs    []int64 `json:"stop_ids"`
	Date       string  `json:"date"`
}

// OptimizeAccepted acknowledges a submitted job; the caller polls the
// status endpoint with the job id.
type OptimizeAccepted struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type RerouteRequest struct {
	TrafficEvents []domain.TrafficEvent `json:"traffic_events"`
}
