// Package complete реализует HTTP-обработчик завершения заявки:
// заявка удаляется из журнала по паре (email, площадка).
package complete

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
)

// Request — структура входных данных для завершения заявки.
type Request struct {
	Email           string `json:"email" validate:"required,email"`
	RequestLocation string `json:"request_location" validate:"required"`
}

// Handler обрабатывает HTTP-запросы завершения заявок.
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
// @Summary Завершение заявки на допуск
// @Description Удаляет заявку по паре email и площадка. Возвращает количество удаленных записей.
// @Tags Approvals
// @Accept  json
// @Produce  json
// @Param request body Request true "Email и площадка заявки"
// @Success 200 {object} map[string]any "Заявка удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /approvals/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.approval.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	removed, err := h.service.CompleteApproval(r.Context(), req.Email, req.RequestLocation)
	if err != nil {
		log.Error("failed to complete approval", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to complete approval"))
		return
	}
	if removed == 0 {
		log.Error("approval not found",
			slog.String("email", req.Email), slog.String("location", req.RequestLocation))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("approval not found"))
		return
	}

	log.Info("approval completed",
		slog.String("email", req.Email), slog.String("location", req.RequestLocation))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed": removed,
	}))
}
