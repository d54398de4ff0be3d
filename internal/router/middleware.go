package router

import (
	"context"
	"errors"
	"net/http"
	"time"

	"expensetrack/internal/logger"
	"expensetrack/internal/storage"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

func userIDFromContext(ctx context.Context) int64 {
	userID, _ := ctx.Value(userIDContextKey).(int64)
	return userID
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader wraps the regular ResponseWriter so we can store the status code to later log it.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", duration.String(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}

func xFrameDenyHeaderMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// requireAuth resolves the session cookie and puts the user id on the
// request context. Each authenticated request refreshes the session's
// last activity, implementing the rolling idle timeout.
func (router *router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		session, err := router.storage.GetSession(r.Context(), cookie.Value, router.idleTimeout)
		if err != nil {
			var notFoundErr *storage.NotFoundError
			if !errors.As(err, &notFoundErr) {
				router.logger.Error("Failed to get session", "error", err)
			}
			clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err = router.storage.TouchSession(r.Context(), session.ID()); err != nil {
			router.logger.Error("Failed to refresh session activity", "error", err)
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, session.UserID())
		next(w, r.WithContext(ctx))
	}
}

func setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})
}
