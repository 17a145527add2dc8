package middleware

import (
	"context"
	"net/http"

	"mitienda-backend/internal/domain"
	"mitienda-backend/pkg/utils"
)

// NewAuthMiddleware validates the signed session token and loads the live
// session behind it. Handlers downstream can rely on a session being present.
func NewAuthMiddleware(sessions domain.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.ExtractClaims(r)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: invalid or missing token")
				return
			}

			sess, ok := sessions.Get(claims.SessionID)
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: session expired")
				return
			}

			ctx := context.WithValue(r.Context(), domain.SessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
