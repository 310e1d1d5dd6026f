package middleware

import (
	"net/http"
	"strings"

	"github.com/rewear-app/rewear-backend/api/responses"
	pkgAuth "github.com/rewear-app/rewear-backend/pkg/auth"
	"github.com/rewear-app/rewear-backend/pkg/config"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.UserID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing subject"))
				return
			}

			ctx := WithSession(r.Context(), claims.UserID, claims.Name, claims.IsAdmin)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  claims.UserID,
					"is_admin": claims.IsAdmin,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
