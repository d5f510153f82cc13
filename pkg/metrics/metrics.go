package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// Metrics accumulates request counters for the whole process. Hot-path fields
// use atomics; the per-endpoint maps take the mutex.
type Metrics struct {
	totalRequests  int64
	activeRequests int64
	totalErrors    int64
	totalLatencyMs int64
	maxLatencyMs   int64

	mu                sync.Mutex
	startTime         time.Time
	endpointCounts    map[string]int64
	endpointLatencies map[string]int64 // total ms per endpoint
	statusCodes       map[int]int64
}

var (
	global *Metrics
	once   sync.Once
)

// GetMetrics returns the process-wide metrics instance.
func GetMetrics() *Metrics {
	once.Do(func() {
		global = newMetrics()
	})
	return global
}

func newMetrics() *Metrics {
	return &Metrics{
		startTime:         time.Now(),
		endpointCounts:    make(map[string]int64),
		endpointLatencies: make(map[string]int64),
		statusCodes:       make(map[int]int64),
	}
}

func (m *Metrics) observe(endpoint string, statusCode int, latencyMs int64) {
	atomic.AddInt64(&m.totalRequests, 1)
	atomic.AddInt64(&m.totalLatencyMs, latencyMs)
	if statusCode >= 400 {
		atomic.AddInt64(&m.totalErrors, 1)
	}

	// Max latency via CAS loop; losing a race means a concurrent larger value won.
	for {
		current := atomic.LoadInt64(&m.maxLatencyMs)
		if latencyMs <= current || atomic.CompareAndSwapInt64(&m.maxLatencyMs, current, latencyMs) {
			break
		}
	}

	m.mu.Lock()
	m.endpointCounts[endpoint]++
	m.endpointLatencies[endpoint] += latencyMs
	m.statusCodes[statusCode]++
	m.mu.Unlock()
}

func (m *Metrics) reset() {
	atomic.StoreInt64(&m.totalRequests, 0)
	atomic.StoreInt64(&m.totalErrors, 0)
	atomic.StoreInt64(&m.totalLatencyMs, 0)
	atomic.StoreInt64(&m.maxLatencyMs, 0)
	m.mu.Lock()
	m.endpointCounts = make(map[string]int64)
	m.endpointLatencies = make(map[string]int64)
	m.statusCodes = make(map[int]int64)
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	TotalRequests  int64            `json:"total_requests"`
	ActiveRequests int64            `json:"active_requests"`
	TotalErrors    int64            `json:"total_errors"`
	ErrorRate      float64          `json:"error_rate_pct"`
	AvgLatencyMs   float64          `json:"avg_latency_ms"`
	MaxLatencyMs   int64            `json:"max_latency_ms"`
	RequestsPerSec float64          `json:"requests_per_sec"`
	UptimeSeconds  float64          `json:"uptime_seconds"`
	EndpointCounts map[string]int64 `json:"endpoint_counts"`
	EndpointAvgMs  map[string]int64 `json:"endpoint_avg_latency_ms"`
	StatusCodes    map[int]int64    `json:"status_codes"`
}

func (m *Metrics) snapshot() Snapshot {
	total := atomic.LoadInt64(&m.totalRequests)
	errors := atomic.LoadInt64(&m.totalErrors)
	totalLatency := atomic.LoadInt64(&m.totalLatencyMs)

	var avgLatency, errorRate float64
	if total > 0 {
		avgLatency = float64(totalLatency) / float64(total)
		errorRate = float64(errors) / float64(total) * 100
	}

	m.mu.Lock()
	uptime := time.Since(m.startTime).Seconds()
	endpointCounts := make(map[string]int64, len(m.endpointCounts))
	endpointAvg := make(map[string]int64, len(m.endpointLatencies))
	for k, v := range m.endpointCounts {
		endpointCounts[k] = v
		if v > 0 {
			endpointAvg[k] = m.endpointLatencies[k] / v
		}
	}
	statusCodes := make(map[int]int64, len(m.statusCodes))
	for k, v := range m.statusCodes {
		statusCodes[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		TotalRequests:  total,
		ActiveRequests: atomic.LoadInt64(&m.activeRequests),
		TotalErrors:    errors,
		ErrorRate:      errorRate,
		AvgLatencyMs:   avgLatency,
		MaxLatencyMs:   atomic.LoadInt64(&m.maxLatencyMs),
		RequestsPerSec: float64(total) / uptime,
		UptimeSeconds:  uptime,
		EndpointCounts: endpointCounts,
		EndpointAvgMs:  endpointAvg,
		StatusCodes:    statusCodes,
	}
}

// MetricsMiddleware records count, latency, active connections, and error
// rate per request.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m := GetMetrics()

			atomic.AddInt64(&m.activeRequests, 1)
			start := time.Now()

			err := next(c)

			atomic.AddInt64(&m.activeRequests, -1)

			// Prefer the route pattern so /tasks/:id buckets as one endpoint.
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			endpoint := fmt.Sprintf("%s %s", c.Request().Method, path)
			m.observe(endpoint, c.Response().Status, time.Since(start).Milliseconds())

			return err
		}
	}
}

// RegisterMetricsRoute adds the /metrics/requests snapshot endpoint and a
// reset endpoint for clearing counters between load-test runs.
func RegisterMetricsRoute(e *echo.Echo) {
	e.GET("/metrics/requests", func(c echo.Context) error {
		return c.JSON(http.StatusOK, GetMetrics().snapshot())
	})

	e.POST("/metrics/reset", func(c echo.Context) error {
		GetMetrics().reset()
		return c.JSON(http.StatusOK, map[string]string{"status": "metrics_reset"})
	})
}
