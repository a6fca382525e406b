package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel/backend/internal/interfaces/http/dto"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Run("consumes the allowance", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)

		allowed, remaining := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)

		allowed, remaining = rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)

		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("10.0.0.2")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)
	})

	t.Run("window expiry resets the bucket", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)

		time.Sleep(15 * time.Millisecond)

		allowed, _ = rl.Allow("10.0.0.1")
		assert.True(t, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(NewRateLimiter(2, time.Minute)))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	get := func(actorID string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if actorID != "" {
			req.Header.Set("X-Actor-ID", actorID)
		}
		router.ServeHTTP(w, req)
		return w
	}

	w := get("")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = get("")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = get("")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Error.Code)

	// a different actor behind the same IP gets a fresh bucket
	w = get("staff-7")
	assert.Equal(t, http.StatusOK, w.Code)
}
