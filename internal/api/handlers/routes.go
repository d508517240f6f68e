package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"lastmile-routing-engine/internal/api/dto"
	"lastmile-routing-engine/internal/domain"
	"lastmile-routing-engine/internal/hub"
	"lastmile-routing-engine/internal/ports"
	"lastmile-routing-engine/internal/services"
)

// RouteHandler serves the optimization lifecycle: job submission and
// polling, persisted route reads, and live rerouting with fan-out to
// subscribed watchers.
type RouteHandler struct {
	Queue    ports.JobQueue
	Routes   ports.RouteStore
	Rerouter *services.Rerouter
	Hub      *hub.Hub
}

// Optimize submits a routing job and returns its id for polling. The solve
// runs on a queue worker so the request returns immediately.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.DepotID < 1 {
		writeError(w, r, http.StatusBadRequest, "depot_id is required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	job := domain.OptimizeRequest{
		DepotID:    req.DepotID,
		VehicleIDs: req.VehicleIDs,
		StopIDs:    req.StopIDs,
		Date:       req.Date,
	}

	jobID, err := h.Queue.Enqueue(r.Context(), job)
	if err != nil {
		log.Printf("enqueue optimize failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeAccepted{JobID: jobID, Status: "queued"})
}

// View serves the read-only sub-resources of a route: job status polling,
// the ordered stop list, and the joined detail. One handler fans them out
// because the status wildcard is a job id while the others are route ids,
// which cannot be expressed as separate mux patterns alongside the ws
// subtree.
func (h *RouteHandler) View(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("view") {
	case "status":
		h.jobStatus(w, r, r.PathValue("route_id"))
	case "stops":
		h.routeStops(w, r)
	case "detail":
		h.routeDetail(w, r)
	default:
		http.NotFound(w, r)
	}
}

// jobStatus polls a submitted job: queued -> started -> done / failed.
func (h *RouteHandler) jobStatus(w http.ResponseWriter, r *http.Request, jobID string) {
	st, err := h.Queue.Status(r.Context(), jobID)
	if err != nil {
		log.Printf("job status failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, st)
}

// Get returns the persisted route header.
func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "route_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	rt, err := h.Routes.GetRoute(r.Context(), routeID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}
	if err != nil {
		log.Printf("get route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(rt))
}

// routeStops returns the ordered stop list for a persisted route.
func (h *RouteHandler) routeStops(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "route_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	stops, err := h.Routes.ListRouteStops(r.Context(), routeID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}
	if err != nil {
		log.Printf("list route stops failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.RouteStopResponse, 0, len(stops))
	for _, rs := range stops {
		res = append(res, dto.NewRouteStopResponse(rs))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// routeDetail returns ordered stops joined with coordinates and windows, the
// shape map clients build polylines and marker popups from.
func (h *RouteHandler) routeDetail(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "route_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	detail, err := h.Routes.ListRouteStopDetail(r.Context(), routeID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}
	if err != nil {
		log.Printf("route detail failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.RouteStopDetailResponse, 0, len(detail))
	for _, d := range detail {
		res = append(res, dto.NewRouteStopDetailResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Reroute recomputes ETAs for an active route under the given traffic events
// and pushes the new schedule to every watcher of the route before
// answering the caller with the same payload.
func (h *RouteHandler) Reroute(w http.ResponseWriter, r *http.Request) {
	routeID, err := pathID(r, "route_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid route id")
		return
	}

	var req dto.RerouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.Rerouter.Reroute(r.Context(), routeID, req.TrafficEvents)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}
	if err != nil {
		log.Printf("reroute failed: route_id=%d err=%v", routeID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	payload, err := json.Marshal(res)
	if err != nil {
		log.Printf("marshal reroute payload failed: route_id=%d err=%v", routeID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	h.Hub.Broadcast(routeID, payload)

	writeJSON(w, r, http.StatusOK, res)
}
