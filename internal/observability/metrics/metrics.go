package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                      sync.Once
	metricsRouter             *chi.Mux
	ledgerOpDurationHistogram *prometheus.HistogramVec
	totalStakedGauge          prometheus.Gauge
	pendingClaimsGauge        prometheus.Gauge
	queuePublishErrorCounter  prometheus.Counter
	tokenClientLatency        *prometheus.HistogramVec
	dbLatency                 *prometheus.HistogramVec
)

// Init initializes the metrics package. Recorders are no-ops until it runs.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerOpDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_op_duration_seconds",
			Help:    "Histogram of ledger operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"op", "status"},
	)

	totalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_total_staked",
			Help: "Sum of outstanding principal across positions and pending claims",
		},
	)

	pendingClaimsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_pending_claims_count",
			Help: "Number of claims currently awaiting their cooldown",
		},
	)

	// add a counter for the number of errors from the fail to publish events into queue
	queuePublishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_publish_error_count",
			Help: "The total number of errors when publishing events to the queue",
		},
	)

	tokenClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "token_client_latency_seconds",
			Help:    "Histogram of token service client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		ledgerOpDurationHistogram,
		totalStakedGauge,
		pendingClaimsGauge,
		queuePublishErrorCounter,
		tokenClientLatency,
		dbLatency,
	)
}

func RecordLedgerOpDuration(d time.Duration, op string, failure bool) {
	if ledgerOpDurationHistogram == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}

	ledgerOpDurationHistogram.WithLabelValues(op, status.String()).Observe(d.Seconds())
}

func RecordTotalStaked(total uint64) {
	if totalStakedGauge == nil {
		return
	}
	totalStakedGauge.Set(float64(total))
}

func RecordPendingClaimsCount(count int) {
	if pendingClaimsGauge == nil {
		return
	}
	pendingClaimsGauge.Set(float64(count))
}

func RecordTokenClientLatency(d time.Duration, method string, failure bool) {
	if tokenClientLatency == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}

	tokenClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if dbLatency == nil {
		return
	}
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordQueuePublishError() {
	if queuePublishErrorCounter == nil {
		return
	}
	queuePublishErrorCounter.Inc()
}
