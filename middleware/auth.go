// Package middleware holds the HTTP middleware chain wrapped around every
// handler: authentication, security headers, request ids, and rate
// limiting.
package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/dgrantpete/scoreboard-sim/apperr"
)

// AuthMiddleware verifies every request carries proof of the configured
// shared secret, either as a short-lived bearer token or (for simple
// embedded clients) the bare secret itself. The core never sees an
// identity: a request that passes is simply "authorized" (spec §6/§7).
type AuthMiddleware struct {
	sharedSecret []byte
	signingKey   []byte
	tokenTTL     time.Duration
}

// NewAuthMiddleware derives the HMAC signing key from the shared secret
// via HKDF, so the literal secret never appears in a token's signature
// material.
func NewAuthMiddleware(sharedSecret string, tokenTTL time.Duration) (*AuthMiddleware, error) {
	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, []byte(sharedSecret), nil, []byte("scoreboard-sim-auth-token"))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return &AuthMiddleware{
		sharedSecret: []byte(sharedSecret),
		signingKey:   key,
		tokenTTL:     tokenTTL,
	}, nil
}

// IssueToken mints a short-lived HMAC-signed bearer token for a caller
// that has already presented the shared secret once, via POST
// /api/auth/token.
func (m *AuthMiddleware) IssueToken(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.signingKey)
}

// IssueTokenFromSecret validates a presented secret and, on success,
// mints a bearer token.
func (m *AuthMiddleware) IssueTokenFromSecret(now time.Time, presented string) (string, bool, error) {
	if !m.secretMatches(presented) {
		return "", false, nil
	}
	token, err := m.IssueToken(now)
	return token, true, err
}

// TokenTTL returns the lifetime minted tokens carry.
func (m *AuthMiddleware) TokenTTL() time.Duration { return m.tokenTTL }

func (m *AuthMiddleware) secretMatches(presented string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), m.sharedSecret) == 1
}

func (m *AuthMiddleware) tokenValid(raw string) bool {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	return err == nil && parsed.Valid
}

// RequireAuth rejects any request that doesn't carry a valid bearer token
// or the bare X-Api-Key header, mapping failures to spec §7's
// missing_api_key / unauthorized kinds.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		apiKey := r.Header.Get("X-Api-Key")

		if authHeader == "" && apiKey == "" {
			apperr.WriteKind(w, apperr.KindMissingAPIKey, "missing Authorization or X-Api-Key header")
			return
		}

		if apiKey != "" {
			if !m.secretMatches(apiKey) {
				apperr.WriteKind(w, apperr.KindUnauthorized, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || !m.tokenValid(parts[1]) {
			apperr.WriteKind(w, apperr.KindUnauthorized, "invalid or expired bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
