//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bodyshop/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := middleware.NewMetrics()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/bookings/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/api/bookings/1", "/api/bookings/2", "/nowhere"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	t.Run("requests are labelled by route template", func(t *testing.T) {
		expected := `
# HELP bodyshop_http_requests_total HTTP requests by route, method and status.
# TYPE bodyshop_http_requests_total counter
bodyshop_http_requests_total{method="GET",route="/api/bookings/:id",status="200"} 2
bodyshop_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
		err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "bodyshop_http_requests_total")
		require.NoError(t, err)
	})

	t.Run("exposition endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bodyshop_http_request_duration_seconds")
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})
}
