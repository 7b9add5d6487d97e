package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/auth"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	requestIDKey
)

const requestIDHeader = "X-Request-Id"

// UserIDFromContext returns the authenticated user ID stored by the Auth
// middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RequestIDFromContext returns the request ID stored by the RequestID
// middleware.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// RequestID assigns every request a UUID, echoed in the X-Request-Id
// response header. An incoming X-Request-Id is kept as-is.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recoverer converts panics into a generic 500 response; the detail is
// logged, never sent to the client.
func Recoverer(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error(r.Context(), "panic in handler", "panic", rec, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Auth enforces a Bearer access token and stores the token's user ID in the
// request context. The 401 message distinguishes a missing header, a bad
// scheme, and an expired token.
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			// scheme matches case-insensitively: "bearer x" is accepted
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "Invalid token format. Use 'Bearer <token>'")
				return
			}

			userID, err := auth.ParseToken(parts[1], secretKey)
			if err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "Token has expired. Please log in again.")
					return
				}
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
