package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAuth(t *testing.T) *AuthMiddleware {
	t.Helper()
	m, err := NewAuthMiddleware("shared-secret-for-tests", time.Minute)
	if err != nil {
		t.Fatalf("NewAuthMiddleware: %v", err)
	}
	return m
}

func TestIssueTokenFromSecretRejectsWrongSecret(t *testing.T) {
	m := newTestAuth(t)
	_, ok, err := m.IssueTokenFromSecret(time.Now(), "not-the-secret")
	if err != nil {
		t.Fatalf("IssueTokenFromSecret: %v", err)
	}
	if ok {
		t.Fatal("expected a mismatched secret to be rejected")
	}
}

func TestIssueTokenFromSecretAcceptsRightSecret(t *testing.T) {
	m := newTestAuth(t)
	token, ok, err := m.IssueTokenFromSecret(time.Now(), "shared-secret-for-tests")
	if err != nil {
		t.Fatalf("IssueTokenFromSecret: %v", err)
	}
	if !ok || token == "" {
		t.Fatal("expected a token to be issued for the correct secret")
	}
	if !m.tokenValid(token) {
		t.Fatal("a freshly issued token should validate")
	}
}

func TestTokenValidRejectsExpiredToken(t *testing.T) {
	m := newTestAuth(t)
	token, err := m.IssueToken(time.Now().Add(-2 * time.Minute))
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if m.tokenValid(token) {
		t.Fatal("a token issued with an already-past expiry should be invalid")
	}
}

func TestRequireAuthRejectsMissingCredentials(t *testing.T) {
	m := newTestAuth(t)
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/mock/games", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthAcceptsValidAPIKey(t *testing.T) {
	m := newTestAuth(t)
	called := false
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/mock/games", nil)
	req.Header.Set("X-Api-Key", "shared-secret-for-tests")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected the wrapped handler to run with a valid API key")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAuthRejectsMalformedBearerHeader(t *testing.T) {
	m := newTestAuth(t)
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a malformed bearer header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/mock/games", nil)
	req.Header.Set("Authorization", "NotBearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthAcceptsValidBearerToken(t *testing.T) {
	m := newTestAuth(t)
	token, err := m.IssueToken(time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/mock/games", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
