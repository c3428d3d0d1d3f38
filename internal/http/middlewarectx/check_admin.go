package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/jwt"
)

// AdminOnlyMiddleware создает middleware, пропускающий только запросы
// с ролью admin в контексте. Ставится после JWTMiddleware.
func AdminOnlyMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if role != jwt.RoleAdmin {
				log.Error("admin role required, access denied")
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required, access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
