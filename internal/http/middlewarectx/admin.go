package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fund-subscriptions/internal/http/response"
)

// RequireAdmin пропускает только вызывающих с ролью администратора.
// Ставится после JWTMiddleware.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := Principal(r.Context())
			if !ok {
				log.Error("principal missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if !principal.IsAdmin() {
				log.Error("admin role required",
					slog.String("user_uid", principal.UserUID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
