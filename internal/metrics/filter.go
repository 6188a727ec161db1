package metrics

import "github.com/prometheus/client_golang/prometheus"

// Extended filter Prometheus metrics.
var (
	FilterApplicationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "solrgeo",
			Name:      "filter_applications_total",
			Help:      "Extended attribute filter applications",
		},
		[]string{"filter", "result"}, // "applied" / "failed"
	)

	FieldResolutionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "solrgeo",
			Name:      "field_resolution_total",
			Help:      "Field name resolutions by outcome",
		},
		[]string{"result"}, // "attribute" / "meta" / "physical" / "error"
	)
)

var filterMetricsRegistered bool

// RegisterFilterMetrics registers Prometheus filter metrics. Must be called once from main.
func RegisterFilterMetrics() {
	if filterMetricsRegistered {
		return
	}
	prometheus.MustRegister(FilterApplicationsTotal)
	prometheus.MustRegister(FieldResolutionTotal)
	filterMetricsRegistered = true
}
