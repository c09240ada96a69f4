package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		relayMessagesTotal,
		generationLatencyMs,
		gatewayPushTotal,
		relayRateLimitedTotal,
	)
}

var (
	relayMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_messages_total",
			Help: "Inbound messages by channel and outcome (ok/invalid/upstream_status/empty_content/transport).",
		},
		[]string{"channel", "outcome"},
	)

	generationLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_latency_ms",
			Help:    "Generation service round-trip latency in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000, 30000},
		},
		[]string{"success"},
	)

	gatewayPushTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_push_total",
			Help: "Delivery gateway pushes by result.",
		},
		[]string{"delivered"},
	)

	relayRateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_rate_limited_total",
			Help: "Messages rejected by the per-sender rate limiter.",
		},
		[]string{"channel"},
	)
)

func IncRelayOutcome(channel, outcome string) {
	relayMessagesTotal.WithLabelValues(norm(channel), norm(outcome)).Inc()
}

func ObserveGeneration(d time.Duration, success bool) {
	generationLatencyMs.WithLabelValues(strconv.FormatBool(success)).Observe(float64(d.Milliseconds()))
}

func IncGatewayPush(delivered bool) {
	gatewayPushTotal.WithLabelValues(strconv.FormatBool(delivered)).Inc()
}

func IncRateLimited(channel string) {
	relayRateLimitedTotal.WithLabelValues(norm(channel)).Inc()
}
