package domain

// DefaultDelayFactor is applied to a traffic event that does not carry its
// own multiplier.
const DefaultDelayFactor = 1.5

// TrafficEvent inflates the travel time of one directed matrix edge.
// Indices address the route's own matrix: 0 is the depot, i+1 the i-th stop
// in visit order.
type TrafficEvent struct {
	FromIdx     int     `json:"from_idx"`
	ToIdx       int     `json:"to_idx"`
	DelayFactor float64 `json:"delay_factor"`
}

// RerouteStop is one stop of a recomputed schedule: the visit position plus
// the new ETA, both as a display clock and as raw minutes.
type RerouteStop struct {
	StopID            int64   `json:"stop_id"`
	Sequence          int     `json:"sequence"`
	PlannedArrival    string  `json:"planned_arrival"`
	PlannedArrivalMin float64 `json:"planned_arrival_min"`
	Lat               float64 `json:"lat"`
	Lng               float64 `json:"lng"`
}

// RerouteResult is the recomputed schedule for a route after traffic events.
// The stop order is unchanged; only arrival times move.
type RerouteResult struct {
	RouteID  int64         `json:"route_id"`
	Rerouted bool          `json:"rerouted"`
	Stops    []RerouteStop `json:"stops"`
}
