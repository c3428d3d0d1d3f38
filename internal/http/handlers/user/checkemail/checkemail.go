// Package checkemail реализует HTTP-обработчик проверки занятости email.
// Проверка чистая: состояние хранилища не изменяется.
package checkemail

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы проверки email.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверка занятости email
// @Description Возвращает признак доступности email для регистрации.
// @Tags Users
// @Produce  json
// @Param email path string true "Проверяемый email"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 422 {object} response.ErrorResponse "Некорректный email"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/check/email/{email} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.checkemail"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email := chi.URLParam(r, "email")
	if err := h.validate.Var(email, "required,email"); err != nil {
		log.Error("invalid email", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid email"))
		return
	}

	availability, err := h.service.CheckEmail(r.Context(), email)
	if err != nil {
		log.Error("failed to check email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check email"))
		return
	}

	log.Info("email checked", slog.String("email", email), slog.Bool("usable", availability.Usable))
	render.JSON(w, r, response.OKWithData(availability))
}
