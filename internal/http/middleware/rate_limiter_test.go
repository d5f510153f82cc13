package middleware

import (
	"net/http"
	"net/http/httptest"
	"task-service/internal/auth"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2) // 2 req/sec, burst of 2

	assert.True(t, rl.Allow("test-key"))
	assert.True(t, rl.Allow("test-key"))

	// Burst exhausted
	assert.False(t, rl.Allow("test-key"))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("key1"))
	assert.True(t, rl.Allow("key2"))

	assert.False(t, rl.Allow("key1"))
	assert.False(t, rl.Allow("key2"))
}

func newLimitedContext(e *echo.Echo, userID *uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set(auth.ContextKeyUserID, *userID)
	}
	return c, rec
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 2)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	mw := rl.Middleware()

	c, rec := newLimitedContext(e, nil)
	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))

	c, rec = newLimitedContext(e, nil)
	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Third request from the same IP trips the limit
	c, rec = newLimitedContext(e, nil)
	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_AuthenticatedUsersGetOwnBucket(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	mw := rl.Middleware()

	// Two users behind the same IP must not share a bucket.
	alice := uuid.New()
	bob := uuid.New()

	c, rec := newLimitedContext(e, &alice)
	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newLimitedContext(e, &bob)
	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newLimitedContext(e, &alice)
	assert.NoError(t, mw(handler)(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
