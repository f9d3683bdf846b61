package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postogestor_http_requests_total",
			Help: "Total de requisições HTTP por rota, método e status.",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postogestor_http_request_duration_seconds",
			Help:    "Duração das requisições HTTP.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	fechamentosCriticos = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "postogestor_fechamentos_criticos_total",
			Help: "Fechamentos fechados com desvio crítico.",
		},
	)
)

// Metrics records Prometheus counters and latency histograms per request.
// Uses c.FullPath() so path params don't explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// ContarFechamentoCritico incrementa o contador de desvios críticos.
func ContarFechamentoCritico() {
	fechamentosCriticos.Inc()
}
