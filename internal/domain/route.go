package domain

import "time"

// Represents a persisted route: one vehicle's ordered tour for a service
// date, with its aggregate metrics.
type Route struct {
	ID              int64
	VehicleID       int64
	Date            time.Time
	TotalDistanceKm float64
	TotalTimeMin    float64
}

// Represents one position in a persisted route. Sequence counts from 0 and
// is unique within a route. Arrival fields stay nil until execution fills
// them in.
type RouteStop struct {
	ID             int64
	RouteID        int64
	StopID         int64
	Sequence       int
	PlannedArrival *string
	ActualArrival  *string
}

// RouteStopDetail joins a route position with the stop it serves, the shape
// map clients consume.
type RouteStopDetail struct {
	StopID          int64
	Sequence        int
	PlannedArrival  *string
	Lat             float64
	Lng             float64
	Address         string
	EarliestTime    TimeOfDay
	LatestTime      TimeOfDay
	PackageWeightKg float64
}

// SolvedRoute is a planning result ready to persist: the vehicle, its tour in
// visit order, and the closed-loop distance.
type SolvedRoute struct {
	VehicleID  int64
	DistanceKm float64
	StopIDs    []int64
}
