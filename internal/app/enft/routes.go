// Package enft предоставляет маршруты для основного приложения.
package enft

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	admincreate "github.com/enftlab/enft-backend/internal/http/handlers/admin/create"
	adminlogin "github.com/enftlab/enft-backend/internal/http/handlers/admin/login"
	"github.com/enftlab/enft-backend/internal/http/handlers/approval/complete"
	approvallist "github.com/enftlab/enft-backend/internal/http/handlers/approval/list"
	"github.com/enftlab/enft-backend/internal/http/handlers/approval/request"
	"github.com/enftlab/enft-backend/internal/http/handlers/auth/login"
	"github.com/enftlab/enft-backend/internal/http/handlers/auth/register"
	"github.com/enftlab/enft-backend/internal/http/handlers/chat/createroom"
	"github.com/enftlab/enft-backend/internal/http/handlers/chat/join"
	"github.com/enftlab/enft-backend/internal/http/handlers/chat/listrooms"
	"github.com/enftlab/enft-backend/internal/http/handlers/health"
	"github.com/enftlab/enft-backend/internal/http/handlers/mint/delegated"
	mintself "github.com/enftlab/enft-backend/internal/http/handlers/mint/self"
	"github.com/enftlab/enft-backend/internal/http/handlers/user/checkemail"
	"github.com/enftlab/enft-backend/internal/http/handlers/user/checknickname"
	"github.com/enftlab/enft-backend/internal/http/middlewarectx"
	adminservice "github.com/enftlab/enft-backend/internal/services/admin"
	authservice "github.com/enftlab/enft-backend/internal/services/auth"
	chatservice "github.com/enftlab/enft-backend/internal/services/chat"
	mintservice "github.com/enftlab/enft-backend/internal/services/mint"
	userservice "github.com/enftlab/enft-backend/internal/services/user"
	"github.com/enftlab/enft-backend/internal/ws"
)

// Services — сервисы, которыми пользуются HTTP-обработчики.
type Services struct {
	User        *userservice.Service
	Admin       *adminservice.Service
	Auth        *authservice.Service
	Chat        *chatservice.Service
	Mint        *mintservice.Service
	Hub         *ws.Hub
	HealthCheck func() error
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.User).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Post("/admin/register", admincreate.New(logger, s.Admin).ServeHTTP)
		r.Post("/admin/login", adminlogin.New(logger, s.Auth).ServeHTTP)
		r.Get("/users/check/email/{email}", checkemail.New(logger, s.User).ServeHTTP)
		r.Get("/users/check/nickname/{nickname}", checknickname.New(logger, s.User).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/approvals", request.New(logger, s.User).ServeHTTP)
			r.Post("/chat/rooms", createroom.New(logger, s.Chat).ServeHTTP)
			r.Get("/chat/rooms", listrooms.New(logger, s.Chat).ServeHTTP)
			r.Get("/chat/rooms/{roomID}/ws", join.New(logger, s.Hub).ServeHTTP)

			// Операции администраторов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/approvals", approvallist.New(logger, s.User).ServeHTTP)
				r.Post("/approvals/complete", complete.New(logger, s.User).ServeHTTP)
				r.Post("/mint", mintself.New(logger, s.Mint).ServeHTTP)
				r.Post("/mint/delegated", delegated.New(logger, s.Mint).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, s.HealthCheck).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
