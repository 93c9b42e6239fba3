// Package httpapi exposes the password analysis toolkit over HTTP.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fernandezvara/passcheck/internal/config"
)

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Server   config.ServerConfig
	Logger   *zap.Logger
	Metrics  *Metrics
	Gatherer prometheus.Gatherer
	Handler  *Handler
}

// NewRouter configures the Gin engine with routes and middleware.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logger(deps.Logger))
	r.Use(deps.Metrics.Handler())

	r.GET("/healthz", deps.Handler.Health)

	metricsPath := deps.Server.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	if deps.Gatherer != nil {
		r.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	} else {
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api/v1", BodyLimit(deps.Server.MaxBodyBytes))
	api.POST("/analyze", deps.Handler.Analyze)
	api.POST("/strength", deps.Handler.Strength)
	api.POST("/common", deps.Handler.Common)
	api.POST("/generate", deps.Handler.Generate)

	return r
}
