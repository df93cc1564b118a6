package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersSigned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clobgate_orders_signed_total",
		Help: "The total number of orders built and signed",
	}, []string{"side", "order_type"})

	OrdersPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clobgate_orders_posted_total",
		Help: "The total number of orders submitted upstream",
	}, []string{"status"})

	LatencyBucket = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clobgate_latency_bucket",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	MetadataLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clobgate_metadata_lookups_total",
		Help: "Metadata cache lookups by kind and result",
	}, []string{"kind", "result"})
)
