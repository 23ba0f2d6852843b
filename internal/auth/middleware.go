package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"otcwise-backend/internal/platform/apierr"
	"otcwise-backend/internal/platform/logger"
)

type contextKey struct{}

var userIDKey contextKey

// UserID returns the authenticated user id stored by RequireAuth, or
// uuid.Nil when the request never passed through it.
func UserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUserID is exposed for handler tests that bypass the middleware.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

type Middleware struct {
	log      *logger.Logger
	verifier *Verifier
}

func NewMiddleware(log *logger.Logger, verifier *Verifier) *Middleware {
	return &Middleware{log: log.With("middleware", "auth"), verifier: verifier}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearer(r)
		if tokenString == "" {
			apierr.Write(w, apierr.New(http.StatusUnauthorized, "UNAUTHORIZED", ErrInvalidToken))
			return
		}
		userID, err := m.verifier.Parse(tokenString)
		if err != nil {
			m.log.Debug("token rejected", "error", err)
			apierr.Write(w, apierr.New(http.StatusUnauthorized, "UNAUTHORIZED", ErrInvalidToken))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
