package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateThrottleAllowsBurstThenRejects(t *testing.T) {
	throttle := NewCreateThrottle(6) // rps = 0.1, burst = 1
	handler := throttle.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/mock/games", nil)
	req.RemoteAddr = "203.0.113.5:1234"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusCreated {
		t.Fatalf("first request status = %d, want %d", first.Code, http.StatusCreated)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want %d", second.Code, http.StatusTooManyRequests)
	}
}

func TestCreateThrottleTracksClientsIndependently(t *testing.T) {
	throttle := NewCreateThrottle(6)
	handler := throttle.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	reqA := httptest.NewRequest(http.MethodPost, "/api/mock/games", nil)
	reqA.RemoteAddr = "198.51.100.1:1111"
	reqB := httptest.NewRequest(http.MethodPost, "/api/mock/games", nil)
	reqB.RemoteAddr = "198.51.100.2:2222"

	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)

	if recA.Code != http.StatusCreated || recB.Code != http.StatusCreated {
		t.Fatalf("distinct clients should each get their own burst: A=%d B=%d", recA.Code, recB.Code)
	}
}
