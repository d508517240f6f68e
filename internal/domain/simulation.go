package domain

// SimulationResult reports the entities a generated scenario created, ready
// to feed straight into an optimize request.
type SimulationResult struct {
	City        string  `json:"city"`
	DepotID     int64   `json:"depot_id"`
	VehicleIDs  []int64 `json:"vehicle_ids"`
	StopIDs     []int64 `json:"stop_ids"`
	NumStops    int     `json:"num_stops"`
	NumVehicles int     `json:"num_vehicles"`
}

// TrafficInjection is the broadcast payload for a manually injected traffic
// event on a live route.
type TrafficInjection struct {
	Event       string  `json:"event"`
	RouteID     int64   `json:"route_id"`
	DelayFactor float64 `json:"delay_factor"`
}
