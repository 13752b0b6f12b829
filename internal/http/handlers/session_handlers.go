package handlers

import (
	"net/http"
	"strconv"

	"voltledger/internal/http/middleware"
	"voltledger/internal/service"
)

// SessionHandlers serves the session lifecycle endpoints.
type SessionHandlers struct {
	sessions *service.SessionsService
}

// NewSessionHandlers returns handler.
func NewSessionHandlers(sessions *service.SessionsService) *SessionHandlers {
	return &SessionHandlers{sessions: sessions}
}

// Start handles POST /sessions.
func (h *SessionHandlers) Start(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		StationID string `json:"station_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StationID == "" {
		writeError(w, http.StatusBadRequest, "station_id required")
		return
	}

	session, err := h.sessions.StartSession(r.Context(), caller, req.StationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// End handles POST /sessions/{id}/end.
func (h *SessionHandlers) End(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		EnergyWh int64 `json:"energy_wh"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.sessions.EndSession(r.Context(), caller, r.PathValue("id"), req.EnergyWh); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// Get handles GET /sessions/{id}.
func (h *SessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Me handles GET /sessions/me.
func (h *SessionHandlers) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sessions, err := h.sessions.SessionsForOwner(r.Context(), caller, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}
