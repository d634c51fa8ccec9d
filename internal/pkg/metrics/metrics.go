package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roomradar",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "roomradar",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Marketplace metrics
	ListingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomradar",
		Subsystem: "listings",
		Name:      "created_total",
		Help:      "Total listings published",
	})

	ListingsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomradar",
		Subsystem: "listings",
		Name:      "deleted_total",
		Help:      "Total listings removed by their owners",
	})

	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomradar",
		Subsystem: "search",
		Name:      "queries_total",
		Help:      "Total radius searches evaluated",
	})

	SearchResultCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roomradar",
		Subsystem: "search",
		Name:      "result_count",
		Help:      "Number of listings returned per radius search",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
	})

	SearchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomradar",
		Subsystem: "search",
		Name:      "cache_hits_total",
		Help:      "Radius searches answered from cache",
	})

	SearchCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "roomradar",
		Subsystem: "search",
		Name:      "cache_misses_total",
		Help:      "Radius searches that reached the spatial index",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomradar",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomradar",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomradar",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roomradar",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// poolStat is the subset of pgxpool.Stat this package needs. Declared here
// so the metrics package does not depend on pgx.
type poolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
}

// UpdateDBPoolMetrics refreshes the pool gauges from pgx pool stats.
func UpdateDBPoolMetrics(stat interface{}) {
	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
