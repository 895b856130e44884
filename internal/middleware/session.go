package middleware

import (
	"net/http"
	"strings"

	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/session"

	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "catalog_session"
)

// Session resolves the page session from the X-Session-ID header or the
// session cookie, issuing a new id when neither is present, and attaches the
// session's catalog service to the request context.
func Session(reg *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionID(r)
			if id == "" {
				id = uuid.New().String()
			}

			svc, created := reg.Get(id)
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(reg.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(SessionHeader, id)

			ctx := logger.WithSessionID(r.Context(), id)
			ctx = session.WithService(ctx, svc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
