package dto

import "lastmile-routing-engine/internal/domain"

// RouteResponse is the persisted route header. Date is rendered as
// "2006-01-02" to match the service-date format jobs are submitted with.
type RouteResponse struct {
	ID              int64   `json:"id"`
	VehicleID       int64   `json:"vehicle_id"`
	Date            string  `json:"date"`
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalTimeMin    float64 `json:"total_time_min"`
}

func NewRouteResponse(rt domain.Route) RouteResponse {
	return RouteResponse{
		ID:              rt.ID,
		VehicleID:       rt.VehicleID,
		Date:            rt.Date.Format("2006-01-02"),
		TotalDistanceKm: rt.TotalDistanceKm,
		TotalTimeMin:    rt.TotalTimeMin,
	}
}

// RouteStopResponse is one ordered position of a route. PlannedArrival is
// null until execution fills it in.
type RouteStopResponse struct {
	StopID         int64   `json:"stop_id"`
	Sequence       int     `json:"sequence"`
	PlannedArrival *string `json:"planned_arrival"`
}

func NewRouteStopResponse(rs domain.RouteStop) RouteStopResponse {
	return RouteStopResponse{
		StopID:         rs.StopID,
		Sequence:       rs.Sequence,
		PlannedArrival: rs.PlannedArrival,
	}
}

// RouteStopDetailResponse joins a route position with its stop's coordinates
// and window, the shape map clients draw polylines and popups from.
type RouteStopDetailResponse struct {
	StopID          int64   `json:"stop_id"`
	Sequence        int     `json:"sequence"`
	PlannedArrival  *string `json:"planned_arrival"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Address         string  `json:"address"`
	EarliestTime    string  `json:"earliest_time"`
	LatestTime      string  `json:"latest_time"`
	PackageWeightKg float64 `json:"package_weight_kg"`
}

func NewRouteStopDetailResponse(d domain.RouteStopDetail) RouteStopDetailResponse {
	return RouteStopDetailResponse{
		StopID:          d.StopID,
		Sequence:        d.Sequence,
		PlannedArrival:  d.PlannedArrival,
		Lat:             d.Lat,
		Lng:             d.Lng,
		Address:         d.Address,
		EarliestTime:    d.EarliestTime.String(),
		LatestTime:      d.LatestTime.String(),
		PackageWeightKg: d.PackageWeightKg,
	}
}
