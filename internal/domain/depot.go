package domain

// Represents the distribution center every route departs from and returns to.
// Open and close times bound the working day but do not constrain individual
// stop windows.
type Depot struct {
	ID        int64
	Name      string
	Lat       float64
	Lng       float64
	OpenTime  TimeOfDay
	CloseTime TimeOfDay
}

func (d Depot) Coords() Coordinates {
	return Coordinates{Lat: d.Lat, Lng: d.Lng}
}
