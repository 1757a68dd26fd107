package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ItineraryGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itinerary_generations_total",
			Help: "Itinerary generation requests by outcome and error kind",
		},
		[]string{"outcome", "error_kind"},
	)

	OracleCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_call_duration_seconds",
			Help:    "Duration of itinerary oracle calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "outcome"},
	)

	GenerationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "itinerary_generations_in_flight",
			Help: "Itinerary generations currently running",
		},
	)
)
