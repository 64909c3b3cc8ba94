package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"givetrack/internal/auth"
	"givetrack/internal/session"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	sessionIDKey contextKey = "session_id"
)

// RequireAuth verifies the bearer token and touches the backing session,
// resetting its idle deadline. A token whose session has idled out is
// rejected with session_expired: that is the forced sign-out, observed on
// the first request after the deadline.
func RequireAuth(secret []byte, sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing authorization")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization")
				return
			}
			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			sess, err := sessions.Touch(r.Context(), claims.SessionID)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "session_expired", "Session expired due to inactivity, please log in again")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal", "session lookup failed")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
			ctx = context.WithValue(ctx, sessionIDKey, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id, or "".
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// SessionIDFromContext returns the live session id, or "".
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithAuth injects auth identifiers directly. Test hook.
func ContextWithAuth(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
