package middleware

import (
	"log/slog"
	"net/http"

	"imperium-server/internal/auth"
	"imperium-server/internal/shared/config"
	"imperium-server/internal/shared/cookies"
	"imperium-server/internal/shared/errors"
	"imperium-server/internal/shared/response"
)

// SessionMiddleware requires a valid session token on guarded routes. With
// no access code configured the guard is a pass-through.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !config.GlobalConfig.AuthEnabled() {
			next.ServeHTTP(w, r)
			return
		}

		logger := slog.With(
			"middleware", "session",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		cookie, err := r.Cookie(cookies.SessionCookieName)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if _, err := auth.ValidateToken(cookie.Value); err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
