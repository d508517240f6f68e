package domain

// StopRecord is the solver's flattened view of one stop: its matrix index,
// load, and time window projected onto minutes since midnight.
type StopRecord struct {
	StopID      int64
	MatrixIdx   int
	WeightKg    float64
	EarliestMin float64
	LatestMin   float64
}

// VehicleRecord is the solver's flattened view of one vehicle.
type VehicleRecord struct {
	VehicleID  int64
	CapacityKg float64
	DriverName string
}

// PlannedRoute is one vehicle's tour produced by the solver. Stops holds
// indices into the solver's stop slice in visit order; DistanceKm is the
// closed loop depot -> stops -> depot.
type PlannedRoute struct {
	Vehicle    VehicleRecord
	Stops      []int
	DistanceKm float64
}

// Score summarizes a full solution. Serialized into job results, so the
// field names are part of the result format.
type Score struct {
	TotalDistanceKm  float64 `json:"total_distance_km"`
	NumRoutes        int     `json:"num_routes"`
	AvgStopsPerRoute float64 `json:"avg_stops_per_route"`
	Unassigned       int     `json:"unassigned"`
}
