// Package metrics holds the Prometheus collectors for auth outcomes and
// dev backend traffic.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Result label values.
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultValidation = "validation"
	ResultServer     = "server"
	ResultNetwork    = "network"
	ResultLimited    = "limited"
	ResultAvailable  = "available"
	ResultTaken      = "taken"
	ResultError      = "error"
)

// Auth groups the auth counters. A nil *Auth records nothing.
type Auth struct {
	Login       *prometheus.CounterVec
	Register    *prometheus.CounterVec
	EmailChecks *prometheus.CounterVec
	ResetMails  *prometheus.CounterVec
}

// NewAuth creates the counters and registers them on reg. A nil reg leaves
// them unregistered, which tests use to avoid global state.
func NewAuth(reg prometheus.Registerer) *Auth {
	m := &Auth{
		Login: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heva",
			Subsystem: "auth",
			Name:      "login_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		Register: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heva",
			Subsystem: "auth",
			Name:      "register_total",
			Help:      "Registration attempts by result.",
		}, []string{"result"}),
		EmailChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heva",
			Subsystem: "auth",
			Name:      "email_checks_total",
			Help:      "Email availability lookups by result.",
		}, []string{"result"}),
		ResetMails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heva",
			Subsystem: "auth",
			Name:      "password_reset_total",
			Help:      "Password reset requests by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Login, m.Register, m.EmailChecks, m.ResetMails)
	}
	return m
}

func inc(c *prometheus.CounterVec, result string) {
	c.WithLabelValues(result).Inc()
}

func (m *Auth) ObserveLogin(result string) {
	if m != nil {
		inc(m.Login, result)
	}
}

func (m *Auth) ObserveRegister(result string) {
	if m != nil {
		inc(m.Register, result)
	}
}

func (m *Auth) ObserveEmailCheck(result string) {
	if m != nil {
		inc(m.EmailChecks, result)
	}
}

func (m *Auth) ObservePasswordReset(result string) {
	if m != nil {
		inc(m.ResetMails, result)
	}
}
