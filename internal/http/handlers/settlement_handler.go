package handlers

import (
	"net/http"

	"voltledger/internal/http/middleware"
	"voltledger/internal/service"
)

// NewPaySessionHandler returns POST /sessions/{id}/pay.
func NewPaySessionHandler(settlement *service.SettlementService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.CallerFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req struct {
			Payment int64 `json:"payment"`
		}
		if !decodeBody(w, r, &req) {
			return
		}

		amount, err := settlement.PaySession(r.Context(), caller, r.PathValue("id"), req.Payment)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "paid",
			"amount": amount,
		})
	}
}
