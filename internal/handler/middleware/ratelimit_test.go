//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bodyshop/internal/handler/middleware"
	"bodyshop/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func hit(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func newLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.POST("/login", middleware.NewRateLimiter(cfg).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst then 429 per client", func(t *testing.T) {
		// a near-zero refill rate keeps the test independent of wall time
		router := newLimitedRouter(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2})

		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1"))

		// other clients have their own bucket
		assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2"))
	})

	t.Run("disabled", func(t *testing.T) {
		router := newLimitedRouter(config.RateLimitConfig{Enabled: false, RPS: 0.001, Burst: 1})
		for range 5 {
			assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1"))
		}
	})
}
