// Package middleware provides HTTP middleware for authenticating API
// requests and gating recruiter-only actions.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const sessionKey contextKey = "session"

// Session identifies the authenticated caller for the rest of the request.
type Session struct {
	UserID uuid.UUID
	Role   string
}

// TokenValidator checks a bearer token and returns the session it encodes.
type TokenValidator interface {
	ValidateToken(token string) (Session, error)
}

// Authenticate validates the Authorization bearer token and stores the
// resulting session in the request context. Requests without a valid token
// get 401 and never reach the handler.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				deny(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			session, err := validator.ValidateToken(token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose session carries a
// different role. It must run after Authenticate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := SessionFrom(r)
			if err != nil {
				deny(w, http.StatusUnauthorized, "no session")
				return
			}
			if session.Role != role {
				deny(w, http.StatusForbidden, fmt.Sprintf("requires %s role", role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from an Authorization header. The scheme
// comparison is case-insensitive per RFC 7235.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// SessionFrom returns the session stored by Authenticate.
func SessionFrom(r *http.Request) (Session, error) {
	session, ok := r.Context().Value(sessionKey).(Session)
	if !ok {
		return Session{}, fmt.Errorf("no session in request context")
	}
	return session, nil
}

// GetUserID returns the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	session, err := SessionFrom(r)
	if err != nil {
		return uuid.Nil, err
	}
	return session.UserID, nil
}

// WithSession returns a context carrying the given session, for handler
// tests that bypass the HTTP middleware.
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
