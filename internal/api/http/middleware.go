package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"leadhub-backend/internal/authz"
	"leadhub-backend/internal/logger"
	"leadhub-backend/internal/security"
	"leadhub-backend/internal/service"
)

type contextKey string

const scopeContextKey contextKey = "authz_scope"

// ScopeFrom returns the resolved scope for an authenticated request. The
// second return is false on routes outside the auth middleware.
func ScopeFrom(ctx context.Context) (authz.Scope, bool) {
	s, ok := ctx.Value(scopeContextKey).(authz.Scope)
	return s, ok
}

// AuthMiddleware validates the bearer token and resolves the caller's scope
// from the database once per request.
type AuthMiddleware struct {
	tokens security.TokenManager
	auth   service.AuthService
}

func NewAuthMiddleware(tokens security.TokenManager, auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, auth: auth}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil || claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}

		scope, err := m.auth.ResolveScope(r.Context(), claims.UserID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
			return
		}

		ctx := context.WithValue(r.Context(), scopeContextKey, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogging logs one line per request.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
