package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/neotech-labs/auth-core/internal/core/domain"
	"github.com/neotech-labs/auth-core/internal/core/ports/driving"
)

// Context keys
type contextKey string

const authContextKey contextKey = "auth_context"

// bearerPrefix is matched case-sensitively, including the space
const bearerPrefix = "Bearer "

// SessionMiddleware attaches the caller's identity to the request context
// when a valid bearer token is presented. It never rejects a request;
// enforcement is left to RequireAuthenticated and RequireRole.
type SessionMiddleware struct {
	sessions driving.SessionAuthenticator
	logger   *slog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(sessions driving.SessionAuthenticator, logger *slog.Logger) *SessionMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

// Handler wraps an http.Handler with session resolution
func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Already authenticated further up the chain
		if GetAuthContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractBearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		authCtx, err := m.sessions.Authenticate(r.Context(), token)
		if err != nil {
			// The request still proceeds anonymously
			switch {
			case isTokenError(err):
				m.logger.Debug("bearer token rejected", "error", err, "path", r.URL.Path)
			case errors.Is(err, domain.ErrIdentityNotFound):
				m.logger.Warn("token subject has no account", "error", err, "path", r.URL.Path)
			default:
				m.logger.Error("session lookup failed", "error", err, "path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), authContextKey, authCtx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isTokenError reports whether err came from decoding the token itself
func isTokenError(err error) bool {
	return errors.Is(err, domain.ErrTokenMalformed) ||
		errors.Is(err, domain.ErrTokenSignature) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		errors.Is(err, domain.ErrTokenInvalid)
}

// RequireAuthenticated rejects requests without a resolved identity
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole ensures the authenticated user has one of the specified roles
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := GetAuthContext(r.Context())
			if authCtx == nil {
				writeError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
				return
			}

			if slices.ContainsFunc(roles, authCtx.HasRole) {
				next.ServeHTTP(w, r)
				return
			}

			writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
		})
	}
}

// GetAuthContext retrieves the auth context from request context
func GetAuthContext(ctx context.Context) *domain.AuthContext {
	if ctx == nil {
		return nil
	}
	authCtx, ok := ctx.Value(authContextKey).(*domain.AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

// extractBearerToken returns the text after the "Bearer " prefix.
// ok is false when the header is absent, uses another scheme or carries no token.
func extractBearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// Logging middleware

// LoggingMiddleware logs HTTP requests
type LoggingMiddleware struct {
	logger *slog.Logger
}

// NewLoggingMiddleware creates a new LoggingMiddleware
func NewLoggingMiddleware(logger *slog.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMiddleware{logger: logger}
}

// Handler wraps an http.Handler with request logging
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		m.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start),
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Recovery middleware

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct {
	logger *slog.Logger
}

// NewRecoveryMiddleware creates a new RecoveryMiddleware
func NewRecoveryMiddleware(logger *slog.Logger) *RecoveryMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryMiddleware{logger: logger}
}

// Handler wraps an http.Handler with panic recovery
func (m *RecoveryMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Error("panic recovered", "panic", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS middleware

// CORSMiddleware handles CORS
type CORSMiddleware struct {
	allowedOrigins []string
}

// NewCORSMiddleware creates a new CORSMiddleware
func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	return &CORSMiddleware{
		allowedOrigins: allowedOrigins,
	}
}

// Handler wraps an http.Handler with CORS headers
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowed := origin != "" && slices.ContainsFunc(m.allowedOrigins, func(o string) bool {
			return o == "*" || o == origin
		})

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.Header().Add("Vary", "Origin")
		}

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
