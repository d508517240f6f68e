package domain

// Delivery lifecycle states for a stop.
const (
	StopPending   = "pending"
	StopInRoute   = "in_route"
	StopDelivered = "delivered"
	StopFailed    = "failed"
)

// Represents a single delivery point: one address, one package, one service
// time window. Stops are created ahead of planning and keep their lifecycle
// status as routes execute.
type Stop struct {
	ID              int64
	Address         string
	Lat             float64
	Lng             float64
	EarliestTime    TimeOfDay
	LatestTime      TimeOfDay
	PackageWeightKg float64
	Status          string
}

func (s Stop) Coords() Coordinates {
	return Coordinates{Lat: s.Lat, Lng: s.Lng}
}
