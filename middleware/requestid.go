package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the header a request's id is echoed under.
const RequestIDHeader = "X-Request-Id"

// RequestID stamps every request with a UUIDv4, reusing one supplied by
// an upstream proxy if present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
