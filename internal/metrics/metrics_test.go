package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveScored("lexicon")
		m.ObserveClassifierFailure("timeout")
		m.ObserveBatch(true, time.Second)
		m.ObserveVideo("completed")
	})
}

func TestCounters(t *testing.T) {
	m := New()
	m.ObserveScored("lexicon")
	m.ObserveScored("lexicon")
	m.ObserveScored("classifier")
	m.ObserveBatch(false, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommentsScored.WithLabelValues("lexicon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommentsScored.WithLabelValues("classifier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchesProcessed.WithLabelValues("failed")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	engine := gin.New()
	engine.Use(m.Middleware())
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	engine.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/ping", "200")))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pulsegrow_http_requests_total")
}
