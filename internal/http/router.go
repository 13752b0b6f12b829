package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Token           http.HandlerFunc
	RegisterOwner   http.HandlerFunc
	RegisterStation http.HandlerFunc
	ListStations    http.HandlerFunc
	GetStation      http.HandlerFunc
	StartSession    http.HandlerFunc
	EndSession      http.HandlerFunc
	GetSession      http.HandlerFunc
	SessionsMe      http.HandlerFunc
	PaySession      http.HandlerFunc
	BuyElectricity  http.HandlerFunc
	Withdraw        http.HandlerFunc
	WalletDeposit   http.HandlerFunc
	WalletBalance   http.HandlerFunc
	Events          http.HandlerFunc
	Metrics         http.Handler
	Health          http.HandlerFunc
}

// NewRouter registers endpoints. Every mutating route goes through the auth
// middleware; token issuance, health, metrics and the observer feed do not.
func NewRouter(routes Routes, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	if routes.Token != nil {
		mux.Handle("POST /auth/token", routes.Token)
	}
	if routes.RegisterOwner != nil {
		mux.Handle("POST /owners/register", protected(routes.RegisterOwner))
	}
	if routes.RegisterStation != nil {
		mux.Handle("POST /stations/register", protected(routes.RegisterStation))
	}
	if routes.ListStations != nil {
		mux.Handle("GET /stations", protected(routes.ListStations))
	}
	if routes.GetStation != nil {
		mux.Handle("GET /stations/{id}", protected(routes.GetStation))
	}
	if routes.StartSession != nil {
		mux.Handle("POST /sessions", protected(routes.StartSession))
	}
	if routes.SessionsMe != nil {
		mux.Handle("GET /sessions/me", protected(routes.SessionsMe))
	}
	if routes.GetSession != nil {
		mux.Handle("GET /sessions/{id}", protected(routes.GetSession))
	}
	if routes.EndSession != nil {
		mux.Handle("POST /sessions/{id}/end", protected(routes.EndSession))
	}
	if routes.PaySession != nil {
		mux.Handle("POST /sessions/{id}/pay", protected(routes.PaySession))
	}
	if routes.BuyElectricity != nil {
		mux.Handle("POST /electricity/buy", protected(routes.BuyElectricity))
	}
	if routes.Withdraw != nil {
		mux.Handle("POST /treasury/withdraw", protected(routes.Withdraw))
	}
	if routes.WalletDeposit != nil {
		mux.Handle("POST /wallet/deposit", protected(routes.WalletDeposit))
	}
	if routes.WalletBalance != nil {
		mux.Handle("GET /wallet/balance", protected(routes.WalletBalance))
	}
	if routes.Events != nil {
		mux.Handle("GET /ws/events", routes.Events)
	}
	if routes.Metrics != nil {
		mux.Handle("GET /metrics", routes.Metrics)
	}
	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}
	return mux
}
