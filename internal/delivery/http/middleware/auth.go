package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "convitepro/internal/delivery/http/helpers"
	"convitepro/internal/domain"
)

type contextKey string

const adminSubjectKey contextKey = "adminSubject"

// SetAdminSubject returns a context with the operator subject set. Used by the admin middleware.
func SetAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

// AdminSubjectFromContext returns the authenticated operator subject from the context, if present.
func AdminSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(adminSubjectKey).(string)
	return subject, ok
}

// RequireAdmin returns a wrapper that validates the Bearer session token
// minted by the admin login and sets the operator subject in the request
// context. If the token is missing or invalid, it responds with 401 and does
// not call next.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetAdminSubject(r.Context(), subject))
			next(w, r)
		}
	}
}
