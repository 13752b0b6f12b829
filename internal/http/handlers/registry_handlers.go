package handlers

import (
	"net/http"
	"strconv"

	"voltledger/internal/http/middleware"
	"voltledger/internal/service"
)

// RegistryHandlers serves the identity directory endpoints.
type RegistryHandlers struct {
	registry *service.RegistryService
}

// NewRegistryHandlers returns handler.
func NewRegistryHandlers(registry *service.RegistryService) *RegistryHandlers {
	return &RegistryHandlers{registry: registry}
}

// RegisterOwner handles POST /owners/register.
func (h *RegistryHandlers) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	owner, err := h.registry.RegisterOwner(r.Context(), caller, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, owner)
}

// RegisterStation handles POST /stations/register.
func (h *RegistryHandlers) RegisterStation(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name string `json:"name"`
		Rate int64  `json:"rate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	station, err := h.registry.RegisterStation(r.Context(), caller, req.Name, req.Rate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

// ListStations handles GET /stations.
func (h *RegistryHandlers) ListStations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	stations, err := h.registry.Stations(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stations": stations})
}

// GetStation handles GET /stations/{id}.
func (h *RegistryHandlers) GetStation(w http.ResponseWriter, r *http.Request) {
	station, err := h.registry.Station(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}
