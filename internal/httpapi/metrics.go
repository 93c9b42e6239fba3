package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fernandezvara/passcheck"
)

const defaultNamespace = "passcheck"

// MetricsOptions configures NewMetrics.
type MetricsOptions struct {
	Registerer prometheus.Registerer
	Namespace  string
	Buckets    []float64
}

// Metrics holds the HTTP and analysis collectors.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge

	Tiers    *prometheus.CounterVec
	Patterns *prometheus.CounterVec
	Common   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, reusing collectors
// that are already registered under the same name.
func NewMetrics(opts MetricsOptions) (*Metrics, error) {
	namespace := opts.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	var (
		m   Metrics
		err error
	)

	m.Requests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests partitioned by method, route, and status code.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	m.Duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latencies in seconds partitioned by method, route, and status code.",
		Buckets:   buckets,
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	m.InFlight, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "in_flight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	}))
	if err != nil {
		return nil, err
	}

	m.Tiers, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strength_tier_total",
		Help:      "Evaluated passwords partitioned by resolved strength tier.",
	}, []string{"tier"}))
	if err != nil {
		return nil, err
	}

	m.Patterns, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "patterns_detected_total",
		Help:      "Weak patterns detected partitioned by kind.",
	}, []string{"pattern"}))
	if err != nil {
		return nil, err
	}

	m.Common, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "common_lookups_total",
		Help:      "Common-password lookups partitioned by list size and result.",
	}, []string{"size", "result"}))
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return c, fmt.Errorf("register collector: %w", err)
		}
		existing, ok := already.ExistingCollector.(T)
		if !ok {
			return c, fmt.Errorf("existing collector has unexpected type %T", already.ExistingCollector)
		}
		return existing, nil
	}
	return c, nil
}

// Handler returns a Gin middleware that records the HTTP metrics.
func (m *Metrics) Handler() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.Requests.With(labels).Inc()
		m.Duration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// ObserveStrength counts the resolved tier.
func (m *Metrics) ObserveStrength(r passcheck.StrengthResult) {
	if m == nil {
		return
	}
	m.Tiers.WithLabelValues(r.Value).Inc()
}

// ObservePatterns counts each detected pattern kind.
func (m *Metrics) ObservePatterns(r passcheck.PatternResult) {
	if m == nil {
		return
	}
	kinds := []struct {
		name  string
		found bool
	}{
		{"keyboard", r.HasKeyboardPattern},
		{"sequential", r.HasSequentialChars},
		{"repeated", r.HasRepeatedChars},
		{"date", r.HasDatePattern},
	}
	for _, k := range kinds {
		if k.found {
			m.Patterns.WithLabelValues(k.name).Inc()
		}
	}
}

// ObserveCommon counts a wordlist lookup.
func (m *Metrics) ObserveCommon(size passcheck.ListSize, common bool) {
	if m == nil {
		return
	}
	result := "miss"
	if common {
		result = "hit"
	}
	m.Common.WithLabelValues(string(size), result).Inc()
}
