package handlers

import (
	"net/http"

	"voltledger/internal/http/middleware"
	"voltledger/internal/service"
)

// CreditHandlers serves the station credit and treasury endpoints.
type CreditHandlers struct {
	credit *service.CreditService
}

// NewCreditHandlers returns handler.
func NewCreditHandlers(credit *service.CreditService) *CreditHandlers {
	return &CreditHandlers{credit: credit}
}

// BuyElectricity handles POST /electricity/buy.
func (h *CreditHandlers) BuyElectricity(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Amount  int64 `json:"amount"`
		Payment int64 `json:"payment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.credit.BuyElectricity(r.Context(), caller, req.Amount, req.Payment); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "purchased"})
}

// Withdraw handles POST /treasury/withdraw.
func (h *CreditHandlers) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	amount, err := h.credit.Withdraw(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"withdrawn": amount})
}
