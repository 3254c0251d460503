package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pourpal_api_requests_total",
			Help: "Total number of API requests issued by the client.",
		},
		[]string{"method", "endpoint", "status"},
	)
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pourpal_api_request_duration_seconds",
			Help:    "API request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	apiRequestErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pourpal_api_request_errors_total",
			Help: "Total number of API requests that failed before a response arrived.",
		},
		[]string{"endpoint"},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pourpal_ws_active_connections",
			Help: "Number of open push channels.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pourpal_ws_events_total",
			Help: "Total number of push channel events.",
		},
		[]string{"event"},
	)
	pollCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pourpal_poll_cycles_total",
			Help: "Total number of completed poll cycles.",
		},
		[]string{"kind"},
	)
	sendRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pourpal_send_rejections_total",
			Help: "Total number of sends rejected locally before any remote call.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		apiRequestErrorsTotal,
		wsActiveConnections,
		wsEventsTotal,
		pollCyclesTotal,
		sendRejectionsTotal,
	)
}

func ObserveAPIRequest(method, endpoint string, status int, seconds float64) {
	apiRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

func IncAPIRequestError(endpoint string) {
	apiRequestErrorsTotal.WithLabelValues(endpoint).Inc()
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func IncPollCycle(kind string) {
	pollCyclesTotal.WithLabelValues(kind).Inc()
}

func IncSendRejection() {
	sendRejectionsTotal.Inc()
}
