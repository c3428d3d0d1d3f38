// Package checknickname реализует HTTP-обработчик проверки занятости никнейма.
package checknickname

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

// Handler обрабатывает HTTP-запросы проверки никнейма.
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
// @Summary Проверка занятости никнейма
// @Description Возвращает признак доступности никнейма для регистрации.
// @Tags Users
// @Produce  json
// @Param nickname path string true "Проверяемый никнейм"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 422 {object} response.ErrorResponse "Некорректный никнейм"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/check/nickname/{nickname} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.checknickname"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	nickname := chi.URLParam(r, "nickname")
	if err := h.validate.Var(nickname, "required,min=2,max=30"); err != nil {
		log.Error("invalid nickname", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid nickname"))
		return
	}

	availability, err := h.service.CheckNickname(r.Context(), nickname)
	if err != nil {
		log.Error("failed to check nickname", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check nickname"))
		return
	}

	log.Info("nickname checked", slog.String("nickname", nickname), slog.Bool("usable", availability.Usable))
	render.JSON(w, r, response.OKWithData(availability))
}
