package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestGenerationRateLimitFailsOpen(t *testing.T) {
	t.Parallel()

	// Nothing listens here; every Redis command errors.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	called := false
	handler := GenerationRateLimit(rdb)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-post", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("redis being down must not block requests")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
