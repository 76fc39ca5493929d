package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func doRequest(router *gin.Engine, remoteAddr string) int {
	req, _ := http.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_BurstExhaustion(t *testing.T) {
	rl := NewRateLimiter(1, 3) // 1 req/min, burst of 3
	router := newLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234"), "request %d within burst", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234"))
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	router := newLimitedRouter(rl)

	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "10.0.0.1:1234"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, doRequest(router, "10.0.0.2:1234"))
}
