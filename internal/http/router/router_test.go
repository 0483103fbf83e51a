package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "leasing_crm_backend/internal/http"
	"leasing_crm_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testConfig struct {
	secret string
}

func (c testConfig) GetHTTPAddr() string        { return ":0" }
func (c testConfig) GetCORSAllowAll() bool      { return false }
func (c testConfig) GetCORSOrigins() []string   { return []string{"http://localhost:5173"} }
func (c testConfig) GetCORSAllowCreds() bool    { return true }
func (c testConfig) GetJWTAccessSecret() string { return c.secret }
func (c testConfig) GetRateLimitRPS() float64   { return 100 }
func (c testConfig) GetRateLimitBurst() int     { return 100 }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	ctx.Protected.GET("/secret", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
}

func newTestEngine(secret string, health map[string]apphttp.HealthChecker) *gin.Engine {
	return New(&apphttp.App{
		Config:  testConfig{secret: secret},
		Logger:  logger.Discard(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	})
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	healthy := newTestEngine("", map[string]apphttp.HealthChecker{"database": pinger{}})
	if rec := serve(healthy, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	degraded := newTestEngine("", map[string]apphttp.HealthChecker{
		"database": pinger{},
		"redis":    pinger{err: errors.New("connection refused")},
	})
	rec := serve(degraded, http.MethodGet, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "degraded" || body.Checks["redis"] != "down" || body.Checks["database"] != "up" {
		t.Fatalf("unexpected health body %+v", body)
	}
}

func TestModuleRoutesAndAuth(t *testing.T) {
	engine := newTestEngine("test-secret", nil)

	if rec := serve(engine, http.MethodGet, "/api/v1/ping"); rec.Code != http.StatusOK {
		t.Fatalf("expected public route to answer, got %d", rec.Code)
	}
	if rec := serve(engine, http.MethodGet, "/api/v1/secret"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := serve(engine, http.MethodGet, "/api/v1/ping"); rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	engine := newTestEngine("", nil)
	if rec := serve(engine, http.MethodGet, "/api/v1/secret"); rec.Code != http.StatusOK {
		t.Fatalf("expected open access without a secret, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	if rec := serve(newTestEngine("", nil), http.MethodGet, "/metrics"); rec.Code != http.StatusOK {
		t.Fatalf("expected metrics to be served, got %d", rec.Code)
	}
}
