package handlers

import (
	"log"
	"net/http"

	"lastmile-routing-engine/internal/api/dto"
	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/services"
)

// SimulationHandler seeds demo scenarios and emits synthetic traffic events.
type SimulationHandler struct {
	Sim *services.Simulator
}

// Start generates a scenario and returns ids ready to feed straight into an
// optimize request.
func (h *SimulationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulationStartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	city := req.City
	if city == "" {
		city = "seattle"
	}

	numStops := req.NumStops
	if numStops == 0 {
		numStops = 20
	}
	if numStops < 1 {
		writeError(w, r, http.StatusBadRequest, "num_stops must be positive")
		return
	}

	numVehicles := req.NumVehicles
	if numVehicles == 0 {
		numVehicles = 3
	}
	if numVehicles < 1 {
		writeError(w, r, http.StatusBadRequest, "num_vehicles must be positive")
		return
	}

	res, err := h.Sim.GenerateScenario(r.Context(), city, numStops, numVehicles, req.Seed)
	if err != nil {
		log.Printf("generate scenario failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// InjectTraffic builds a synthetic traffic event. Clients pass the payload
// on to the reroute endpoint to exercise live updates.
func (h *SimulationHandler) InjectTraffic(w http.ResponseWriter, r *http.Request) {
	var req dto.TrafficInjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.RouteID < 1 {
		writeError(w, r, http.StatusBadRequest, "route_id is required")
		return
	}

	factor := req.DelayFactor
	if factor == 0 {
		factor = domain.DefaultDelayFactor
	}

	writeJSON(w, r, http.StatusOK, services.InjectTraffic(req.RouteID, factor))
}
