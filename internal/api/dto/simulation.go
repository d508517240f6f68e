package dto

// SimulationStartRequest configures a generated scenario. Zero values take
// the demo defaults (seattle, 20 stops, 3 vehicles); a nil seed draws a
// fresh scenario every call.
type SimulationStartRequest struct {
	City        string `json:"city"`
	NumStops    int    `json:"num_stops"`
	NumVehicles int    `json:"num_vehicles"`
	Seed        *int64 `json:"seed"`
}

type TrafficInjectRequest struct {
	RouteID     int64   `json:"route_id"`
	DelayFactor float64 `json:"delay_factor"`
}
