package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/leads/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/leads/:id", "204"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leads/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leads/def", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/leads/:id", "204"))

	if after-before != 2 {
		t.Fatalf("expected 2 requests counted under the route template, got %v", after-before)
	}
}

func TestObservePhone(t *testing.T) {
	before := testutil.ToFloat64(PhoneOutcomesTotal.WithLabelValues("canonical", "fallback"))
	ObservePhone("canonical", "fallback")
	if got := testutil.ToFloat64(PhoneOutcomesTotal.WithLabelValues("canonical", "fallback")) - before; got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}
