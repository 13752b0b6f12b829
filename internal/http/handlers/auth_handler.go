package handlers

import (
	"net/http"
	"strings"

	"voltledger/internal/service"
)

// NewTokenHandler returns POST /auth/token. Upstream authentication of the
// participant is out of scope; the token only binds an identity to calls.
func NewTokenHandler(tokens *service.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ParticipantID string `json:"participant_id"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.ParticipantID) == "" {
			writeError(w, http.StatusBadRequest, "participant_id required")
			return
		}

		token, err := tokens.GenerateToken(req.ParticipantID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
