package handlers

import (
	"net/http"

	"voltledger/internal/http/middleware"
	"voltledger/internal/service"
)

// WalletHandlers serves the value-ledger funding endpoints.
type WalletHandlers struct {
	wallet *service.WalletService
}

// NewWalletHandlers returns handler.
func NewWalletHandlers(wallet *service.WalletService) *WalletHandlers {
	return &WalletHandlers{wallet: wallet}
}

// Deposit handles POST /wallet/deposit.
func (h *WalletHandlers) Deposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.wallet.Deposit(r.Context(), caller, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "credited"})
}

// Balance handles GET /wallet/balance.
func (h *WalletHandlers) Balance(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balance, err := h.wallet.Balance(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}
