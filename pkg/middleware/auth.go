package middleware

import (
	"net/http"
	"strings"

	"barber-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminToken guards operator routes with a shared bearer token whose
// bcrypt hash is configured. An empty hash disables the routes.
func AdminToken(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				logger.Warn("Admin route called but no admin token is configured", zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access is disabled")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(strings.TrimSpace(token))); err != nil {
				logger.Warn("Admin check: rejected token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseUnauthorized(w, "Invalid admin token")
				return
			}

			ctx := utils.SetRoleContext(r.Context(), utils.RoleAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
