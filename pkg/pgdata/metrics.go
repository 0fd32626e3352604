package pgdata

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pgdata_client",
			Name:      "requests_total",
			Help:      "HTTP requests sent to pgdata by endpoint and status code.",
		},
		[]string{"endpoint", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pgdata_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests sent to pgdata.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func observeRequest(endpoint string, resp *resty.Response, err error, elapsed time.Duration) {
	requestsTotal.WithLabelValues(endpoint, responseCode(resp, err)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
