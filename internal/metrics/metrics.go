package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the project API.
type Metrics struct {
	projectOps    *prometheus.CounterVec
	loginAttempts *prometheus.CounterVec
}

// NewMetrics creates and registers all API metrics against the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		projectOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "project_operations_total",
				Help: "Total number of project mutations by operation",
			},
			[]string{"operation"},
		),
		loginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
	}
}

// ProjectOp records a completed project mutation ("created", "updated", "deleted").
func (m *Metrics) ProjectOp(operation string) {
	m.projectOps.WithLabelValues(operation).Inc()
}

// Login records a login attempt outcome.
func (m *Metrics) Login(ok bool) {
	result := "rejected"
	if ok {
		result = "ok"
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}
