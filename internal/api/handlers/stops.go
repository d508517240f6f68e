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

// StopHandler exposes CRUD over delivery stops.
type StopHandler struct {
	Repo ports.StopRepository
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	stops, err := h.Repo.List(r.Context())
	if err != nil {
		log.Printf("list stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		res = append(res, dto.NewStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *StopHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.StopCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Address) == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}
	if req.PackageWeightKg <= 0 {
		writeError(w, r, http.StatusBadRequest, "package_weight_kg must be positive")
		return
	}
	if req.LatestTime.Before(req.EarliestTime) {
		writeError(w, r, http.StatusBadRequest, "latest_time must not precede earliest_time")
		return
	}

	stop := domain.Stop{
		Address:         req.Address,
		Lat:             req.Lat,
		Lng:             req.Lng,
		EarliestTime:    req.EarliestTime,
		LatestTime:      req.LatestTime,
		PackageWeightKg: req.PackageWeightKg,
		Status:          domain.StopPending,
	}

	id, err := h.Repo.Create(r.Context(), stop)
	if err != nil {
		log.Printf("create stop failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	stop.ID = id

	writeJSON(w, r, http.StatusCreated, dto.NewStopResponse(stop))
}

func (h *StopHandler) Get(w http.ResponseWriter, r *http.Request) {
	stopID, err := pathID(r, "stop_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stop id")
		return
	}

	stop, err := h.Repo.GetByID(r.Context(), stopID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "stop not found")
		return
	}
	if err != nil {
		log.Printf("get stop failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewStopResponse(stop))
}
