package domain

// Coordinates is a geographic position in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// LonLat returns the position as a [lng, lat] pair, the order road-network
// matrix APIs expect.
func (c Coordinates) LonLat() []float64 {
	return []float64{c.Lng, c.Lat}
}

// LonLatList converts a coordinate list to the nested [lng, lat] form used in
// matrix request payloads.
func LonLatList(coords []Coordinates) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = c.LonLat()
	}
	return out
}
