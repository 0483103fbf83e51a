// Package metrics holds the Prometheus collectors shared by the application.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	PhoneOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_phone_outcomes_total",
			Help: "Phone normalization results by operation and outcome",
		},
		[]string{"operation", "outcome"}, // format|canonical|display|suggest , parsed|partial|fallback
	)

	LeadScoresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_lead_scores_total",
			Help: "Lead scores computed by priority",
		},
		[]string{"priority"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		HTTPRequestsTotal,
		PhoneOutcomesTotal,
		LeadScoresTotal,
	)
}

// Middleware counts requests by matched route so path parameters do not
// explode label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ObservePhone counts one phone operation result.
func ObservePhone(operation, outcome string) {
	PhoneOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveScore counts one computed lead score.
func ObserveScore(priority string) {
	LeadScoresTotal.WithLabelValues(priority).Inc()
}
