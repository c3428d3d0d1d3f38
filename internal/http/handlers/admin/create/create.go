// Package create реализует HTTP-обработчик создания учетной записи
// администратора площадки. Вместе с учетной записью выпускаются
// signing key и keyring; наружу возвращается представление без секретов.
package create

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы создания администраторов.
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
// @Summary Создание администратора
// @Description Создает учетную запись администратора площадки с keyring для подписи минтов.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DummyAdmin true "Данные администратора"
// @Success 200 {object} map[string]any "Администратор создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAdmin
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	admin, err := h.service.CreateAccount(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrAdminExists) {
			log.Error("admin already exists", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("admin already exists"))
			return
		}
		log.Error("failed to create admin", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create admin"))
		return
	}

	log.Info("created admin account", slog.String("email", admin.Email))
	render.JSON(w, r, response.OKWithData(admin))
}
