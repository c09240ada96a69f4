package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(telegramUpdatesReceivedTotal)
}

var telegramUpdatesReceivedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "telegram_updates_received_total",
		Help: "Counts incoming telegram updates by kind (text/other).",
	},
	[]string{"kind"},
)

func IncTelegramUpdate(kind string) {
	telegramUpdatesReceivedTotal.WithLabelValues(norm(kind)).Inc()
}
