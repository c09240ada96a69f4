package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(buildInfo)
}

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "relay_build_info",
		Help: "Constant 1, labelled with the relay name, version and commit hash.",
	},
	[]string{"relay", "version", "commit"},
)

func SetBuildInfo(relay, version, commit string) {
	buildInfo.WithLabelValues(norm(relay), version, commit).Set(1)
}
