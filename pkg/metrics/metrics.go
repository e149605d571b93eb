package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Bus metrics
	BusEventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmfanout_bus_events_published_total",
			Help: "Total number of events published on a broadcast bus",
		},
		[]string{"bus"},
	)

	BusConsumerLagTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmfanout_bus_consumer_lag_total",
			Help: "Total number of events evicted from a consumer's queue before being read",
		},
		[]string{"bus"},
	)

	BusSubscribers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cmfanout_bus_subscribers",
			Help: "Current number of live subscribers on a broadcast bus",
		},
		[]string{"bus"},
	)

	// Token Store metrics
	TokenStoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cmfanout_token_store_size",
			Help: "Current number of tokens registered in the Token Store",
		},
	)

	// Token Service metrics
	TokenRegisterTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cmfanout_token_register_total",
			Help: "Total number of TokenService.Register calls",
		},
	)

	TokenUpdateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cmfanout_token_update_total",
			Help: "Total number of TokenService.Update calls",
		},
	)

	TokenInvalidateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cmfanout_token_invalidate_total",
			Help: "Total number of TokenService.Invalidate calls",
		},
	)

	TokenOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cmfanout_token_operation_duration_seconds",
			Help:    "Duration of a Token Service RPC, by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Message Service metrics
	MessageSendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmfanout_message_send_total",
			Help: "Total number of MessageService.Send calls, by outcome",
		},
		[]string{"outcome"},
	)

	MessageSendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cmfanout_message_send_duration_seconds",
			Help:    "Duration of MessageService.Send, including the Push Sink call",
			Buckets: prometheus.DefBuckets,
		},
	)

	PushSinkDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cmfanout_push_sink_duration_seconds",
			Help:    "Duration of a single Push Sink call",
			Buckets: prometheus.DefBuckets,
		},
	)

	PushSinkErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cmfanout_push_sink_errors_total",
			Help: "Total number of Push Sink calls that returned an error",
		},
	)

	// Subscription metrics
	SubscriptionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cmfanout_subscriptions_active",
			Help: "Current number of open subscription streams, by stream kind",
		},
		[]string{"stream"},
	)

	// gRPC request metrics
	RPCRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cmfanout_rpc_requests_total",
			Help: "Total number of RPC requests, by method and status code",
		},
		[]string{"method", "code"},
	)

	RPCRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cmfanout_rpc_request_duration_seconds",
			Help:    "RPC request duration in seconds, by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(BusEventsPublishedTotal)
	prometheus.MustRegister(BusConsumerLagTotal)
	prometheus.MustRegister(BusSubscribers)
	prometheus.MustRegister(TokenStoreSize)
	prometheus.MustRegister(TokenRegisterTotal)
	prometheus.MustRegister(TokenUpdateTotal)
	prometheus.MustRegister(TokenInvalidateTotal)
	prometheus.MustRegister(TokenOperationDuration)
	prometheus.MustRegister(MessageSendTotal)
	prometheus.MustRegister(MessageSendDuration)
	prometheus.MustRegister(PushSinkDuration)
	prometheus.MustRegister(PushSinkErrorsTotal)
	prometheus.MustRegister(SubscriptionsActive)
	prometheus.MustRegister(RPCRequestsTotal)
	prometheus.MustRegister(RPCRequestDuration)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
