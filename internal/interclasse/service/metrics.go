package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interclasse_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interclasse_registrations_total",
			Help: "Completed registration attempts by outcome",
		},
		[]string{"outcome"},
	)
	photosNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interclasse_photos_normalized_total",
			Help: "Photo uploads by outcome",
		},
		[]string{"outcome"},
	)
	housekeepingSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interclasse_housekeeping_expired_entries_total",
			Help: "Expired session entries removed by housekeeping",
		},
	)
)
