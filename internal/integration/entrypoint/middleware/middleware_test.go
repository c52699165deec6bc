package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/config"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestLogger())
	engine.POST("/limited", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine
}

func post(engine *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_BlocksAfterMaxRequests(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, MaxRequests: 2, Window: time.Minute})
	engine := newLimitedEngine(rl)

	expected := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}
	for i, want := range expected {
		if got := post(engine); got != want {
			t.Errorf("request %d: expected status %d, got %d", i+1, want, got)
		}
	}

	rl.Reset()
	if got := post(engine); got != http.StatusNoContent {
		t.Errorf("expected status %d after reset, got %d", http.StatusNoContent, got)
	}
}

func TestRateLimiter_WindowExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: true, MaxRequests: 1, Window: time.Minute})
	rl.now = func() time.Time { return now }

	if !rl.allow("a") {
		t.Fatal("expected first request to be allowed")
	}
	if rl.allow("a") {
		t.Fatal("expected second request in window to be blocked")
	}

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	if len(rl.entries) != 0 {
		t.Errorf("expected expired entries to be removed, got %d", len(rl.entries))
	}
	if !rl.allow("a") {
		t.Error("expected request in a new window to be allowed")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{Enabled: false, MaxRequests: 1, Window: time.Minute})
	engine := newLimitedEngine(rl)

	for i := 0; i < 5; i++ {
		if got := post(engine); got != http.StatusNoContent {
			t.Fatalf("request %d: expected status %d, got %d", i+1, http.StatusNoContent, got)
		}
	}
}
