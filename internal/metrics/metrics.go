package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelagent_chat_requests_total",
			Help: "Chat requests by terminal outcome",
		},
		[]string{"outcome"},
	)

	DestinationResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelagent_destination_resolutions_total",
			Help: "Destination resolutions by the strategy that decided them",
		},
		[]string{"strategy"},
	)

	ModelFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "travelagent_model_fallbacks_total",
			Help: "Language model calls that failed and fell back to the text heuristic",
		},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelagent_upstream_request_duration_seconds",
			Help:    "Duration of outbound upstream calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	UpstreamUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "travelagent_upstream_up",
			Help: "Result of the last upstream probe (1 = healthy)",
		},
		[]string{"upstream"},
	)
)

const (
	OutcomeAskDestination = "ask_destination"
	OutcomeNotFound       = "not_found"
	OutcomeSuccess        = "success"
	OutcomeError          = "error"
)
