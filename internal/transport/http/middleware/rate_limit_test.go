package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.POST("/limited", RateLimit(rps, burst), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return g
}

func hit(g *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	g := newLimitedRouter(0.001, 2)

	require.Equal(t, http.StatusOK, hit(g, "10.1.0.1").Code)
	require.Equal(t, http.StatusOK, hit(g, "10.1.0.1").Code)

	rejected := hit(g, "10.1.0.1")
	require.Equal(t, http.StatusTooManyRequests, rejected.Code)
	require.Equal(t, "1", rejected.Header().Get("Retry-After"))
}

func TestRateLimit_PerClientIsolation(t *testing.T) {
	g := newLimitedRouter(0.001, 1)

	require.Equal(t, http.StatusOK, hit(g, "10.2.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(g, "10.2.0.1").Code)

	// a different client still has its full burst
	require.Equal(t, http.StatusOK, hit(g, "10.2.0.2").Code)
}
