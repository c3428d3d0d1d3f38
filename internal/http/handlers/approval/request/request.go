// Package request реализует HTTP-обработчик подачи заявки на допуск.
//
// Email заявителя берется из контекста, куда его кладет JWT middleware.
// Повторная ожидающая заявка на ту же площадку возвращается с HTTP 403.
package request

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/enftlab/enft-backend/internal/http/middlewarectx"
	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы подачи заявок.
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
// @Summary Подача заявки на допуск
// @Description Создает заявку пользователя на допуск к площадке в статусе requested.
// @Tags Approvals
// @Accept  json
// @Produce  json
// @Param request body models.DummyApproval true "Параметры заявки"
// @Success 200 {object} map[string]any "Заявка создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 403 {object} response.ErrorResponse "Ожидающая заявка уже существует"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /approvals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.approval.request"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.Email).(string)
	if !ok || email == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	var req models.DummyApproval
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

	uid, err := h.service.RequestApproval(r.Context(), email, req)
	if err != nil {
		if errors.Is(err, repository.ErrApprovalExists) {
			log.Error("pending approval already exists", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("pending approval already exists"))
			return
		}
		log.Error("failed to create approval", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create approval"))
		return
	}

	log.Info("approval requested", slog.String("uid", uid), slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":              uid,
		"request_location": req.RequestLocation,
		"request_day":      req.RequestDay,
	}))
}
