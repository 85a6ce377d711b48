package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromApp(t *testing.T) (*fiber.App, *PrometheusMiddleware, *prometheus.Registry) {
	t.Helper()
	// fresh registry per test, otherwise registration fails as duplicate
	reg := prometheus.NewRegistry()
	m, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	app.Get("/api/applications/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/api/applications/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/api/error", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "conflict") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app, m, reg
}

func TestPrometheusMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		labels []string
	}{
		{name: "route pattern is used as label", method: "GET", target: "/api/applications/123", labels: []string{"GET", "/api/applications/:id", "200"}},
		{name: "method is part of the label", method: "DELETE", target: "/api/applications/123", labels: []string{"DELETE", "/api/applications/:id", "204"}},
		{name: "fiber error status is recorded", method: "GET", target: "/api/error", labels: []string{"GET", "/api/error", "409"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m, _ := newPromApp(t)

			_, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)

			assert.Equal(t, float64(1), testutil.ToFloat64(m.requestCount.WithLabelValues(tt.labels...)))
			assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
		})
	}
}

func TestPrometheusMiddleware_ExcludeMetrics(t *testing.T) {
	app, _, reg := newPromApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		assert.Empty(t, mf.GetMetric(), mf.GetName())
	}
}

func TestNewPrometheusMiddleware_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	_, err = NewPrometheusMiddleware(reg)
	assert.Error(t, err)
}
