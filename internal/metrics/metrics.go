package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for the analysis pipeline and the HTTP layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	CommentsScored     *prometheus.CounterVec
	ClassifierFailures *prometheus.CounterVec
	BatchesProcessed   *prometheus.CounterVec
	BatchDuration      prometheus.Histogram
	VideosAnalyzed     *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CommentsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsegrow_comments_scored_total",
			Help: "Comments scored, by the scorer that produced the final sentiment.",
		}, []string{"source"}),
		ClassifierFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsegrow_classifier_failures_total",
			Help: "External classifier calls that fell back to the lexicon.",
		}, []string{"reason"}),
		BatchesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsegrow_batches_processed_total",
			Help: "Comment batches processed by the orchestrator.",
		}, []string{"result"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pulsegrow_batch_duration_seconds",
			Help:    "Time to score and commit one comment batch.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		VideosAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsegrow_videos_analyzed_total",
			Help: "Video analyses reaching a terminal status.",
		}, []string{"status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pulsegrow_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pulsegrow_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.CommentsScored,
		m.ClassifierFailures,
		m.BatchesProcessed,
		m.BatchDuration,
		m.VideosAnalyzed,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveScored counts one scored comment
func (m *Metrics) ObserveScored(source string) {
	if m == nil {
		return
	}
	m.CommentsScored.WithLabelValues(source).Inc()
}

// ObserveClassifierFailure counts one classifier fallback
func (m *Metrics) ObserveClassifierFailure(reason string) {
	if m == nil {
		return
	}
	m.ClassifierFailures.WithLabelValues(reason).Inc()
}

// ObserveBatch records a finished batch
func (m *Metrics) ObserveBatch(ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.BatchesProcessed.WithLabelValues(result).Inc()
	m.BatchDuration.Observe(elapsed.Seconds())
}

// ObserveVideo records a video reaching a terminal status
func (m *Metrics) ObserveVideo(status string) {
	if m == nil {
		return
	}
	m.VideosAnalyzed.WithLabelValues(status).Inc()
}

// Middleware records request counts and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
