package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "warranty_gateway_requests_total", Help: "Gateway requests"},
		[]string{"endpoint", "status"},
	)
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "warranty_upstream_calls_total", Help: "Calls to the warranty REST API"},
		[]string{"resource", "result", "http_status"},
	)
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "warranty_upstream_latency_seconds", Help: "Warranty REST API latency"},
		[]string{"resource"},
	)
	Fallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "warranty_fallback_total", Help: "Reads answered from the static dataset"},
		[]string{"resource"},
	)
	InitData = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "warranty_telegram_init_data_total", Help: "Telegram init data checks"},
		[]string{"result"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(APIRequests, UpstreamCalls, UpstreamLatency, Fallbacks, InitData)
}
