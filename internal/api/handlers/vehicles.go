package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"lastmile-routing-engine/internal/api/dto"
	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/ports"
)

// VehicleHandler exposes CRUD over fleet vehicles.
type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Repo.List(r.Context())
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		res = append(res, dto.NewVehicleResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.DepotID < 1 {
		writeError(w, r, http.StatusBadRequest, "depot_id is required")
		return
	}
	if req.CapacityKg <= 0 {
		writeError(w, r, http.StatusBadRequest, "capacity_kg must be positive")
		return
	}
	if strings.TrimSpace(req.DriverName) == "" {
		writeError(w, r, http.StatusBadRequest, "driver_name is required")
		return
	}

	vehicle := domain.Vehicle{
		DepotID:    req.DepotID,
		CapacityKg: req.CapacityKg,
		DriverName: req.DriverName,
	}

	id, err := h.Repo.Create(r.Context(), vehicle)
	if err != nil {
		log.Printf("create vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	vehicle.ID = id

	writeJSON(w, r, http.StatusCreated, dto.NewVehicleResponse(vehicle))
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "vehicle_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.Repo.GetByID(r.Context(), vehicleID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		log.Printf("get vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewVehicleResponse(vehicle))
}
