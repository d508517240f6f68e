package dto

import "lastmile-routing-engine/internal/domain"

type StopCreateRequest struct {
	Address         string           `json:"address"`
	Lat             float64          `json:"lat"`
	Lng             float64          `json:"lng"`
	EarliestTime    domain.TimeOfDay `json:"earliest_time"`
	LatestTime      domain.TimeOfDay `json:"latest_time"`
	PackageWeightKg float64          `json:"package_weight_kg"`
}

type StopResponse struct {
	ID              int64            `json:"id"`
	Address         string           `json:"address"`
	Lat             float64          `json:"lat"`
	Lng             float64          `json:"lng"`
	EarliestTime    domain.TimeOfDay `json:"earliest_time"`
	LatestTime      domain.TimeOfDay `json:"latest_time"`
	PackageWeightKg float64          `json:"package_weight_kg"`
	Status          string           `json:"status"`
}

func NewStopResponse(s domain.Stop) StopResponse {
	return StopResponse{
		ID:              s.ID,
		Address:         s.Address,
		Lat:             s.Lat,
		Lng:             s.Lng,
		EarliestTime:    s.EarliestTime,
		LatestTime:      s.LatestTime,
		PackageWeightKg: s.PackageWeightKg,
		Status:          s.Status,
	}
}

type VehicleCreateRequest struct {
	DepotID    int64   `json:"depot_id"`
	CapacityKg float64 `json:"capacity_kg"`
	DriverName string  `json:"driver_name"`
}

type VehicleResponse struct {
	ID         int64   `json:"id"`
	DepotID    int64   `json:"depot_id"`
	CapacityKg float64 `json:"capacity_kg"`
	DriverName string  `json:"driver_name"`
}

func NewVehicleResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:         v.ID,
		DepotID:    v.DepotID,
		CapacityKg: v.CapacityKg,
		DriverName: v.DriverName,
	}
}
