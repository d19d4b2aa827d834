package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total number of successful signups",
		},
	)

	LoginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of successful logins",
		},
	)

	LoginFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "login_failures_total",
			Help: "Total number of rejected login attempts",
		},
	)

	TokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)
)
