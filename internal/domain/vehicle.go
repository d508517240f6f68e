package domain

// Represents a delivery vehicle based at a depot. Capacity is the hard
// payload limit the planner packs against.
type Vehicle struct {
	ID         int64
	DepotID    int64
	CapacityKg float64
	DriverName string
}
