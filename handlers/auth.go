package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgrantpete/scoreboard-sim/apperr"
	"github.com/dgrantpete/scoreboard-sim/middleware"
)

// AuthHandler issues bearer tokens in exchange for the shared secret
// (spec_full.md A3).
type AuthHandler struct {
	auth *middleware.AuthMiddleware
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type tokenRequest struct {
	SharedSecret string `json:"shared_secret"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// IssueToken handles POST /api/auth/token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperr.WriteKind(w, apperr.KindInvalidRequest, "malformed JSON body")
		return
	}

	now := time.Now().UTC()
	token, ok, err := h.auth.IssueTokenFromSecret(now, req.SharedSecret)
	if err != nil {
		apperr.WriteKind(w, apperr.KindInternal, "failed to issue token")
		return
	}
	if !ok {
		apperr.WriteKind(w, apperr.KindUnauthorized, "invalid shared secret")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: now.Add(h.auth.TokenTTL()).UTC().Format(time.RFC3339),
	})
}
