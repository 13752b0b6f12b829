package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes ledger counters on a Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted   prometheus.Counter
	SessionsCompleted prometheus.Counter
	SessionsPaid      prometheus.Counter
	SettledAmount     prometheus.Counter
	CreditPurchased   prometheus.Counter
	Registrations     *prometheus.CounterVec
}

// New registers the ledger collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltledger_sessions_started_total",
			Help: "Number of charging sessions created",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltledger_sessions_completed_total",
			Help: "Number of charging sessions completed by stations",
		}),
		SessionsPaid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltledger_sessions_paid_total",
			Help: "Number of charging sessions settled",
		}),
		SettledAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltledger_settled_amount_total",
			Help: "Total amount transferred to stations, currency minor units",
		}),
		CreditPurchased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voltledger_electricity_credit_total",
			Help: "Total prepaid electricity credit bought by stations",
		}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "voltledger_registrations_total",
			Help: "Number of successful registrations by role",
		}, []string{"role"}),
	}

	registry.MustRegister(
		m.SessionsStarted,
		m.SessionsCompleted,
		m.SessionsPaid,
		m.SettledAmount,
		m.CreditPurchased,
		m.Registrations,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
