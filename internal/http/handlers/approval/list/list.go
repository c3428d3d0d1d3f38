// Package list реализует HTTP-обработчик выборки заявок на допуск.
//
// Фильтры передаются query-параметрами email, location и day;
// любое подмножество допустимо, пустой фильтр возвращает все заявки.
package list

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы выборки заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список заявок на допуск
// @Description Возвращает заявки по фильтру из query-параметров email, location и day.
// @Tags Approvals
// @Produce  json
// @Param email query string false "Email заявителя"
// @Param location query string false "Запрошенная площадка"
// @Param day query int false "Запрошенный срок в днях"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 422 {object} response.ErrorResponse "Некорректный параметр day"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /approvals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.approval.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var filter models.ApprovalFilter
	if email := r.URL.Query().Get("email"); email != "" {
		filter.Email = &email
	}
	if location := r.URL.Query().Get("location"); location != "" {
		filter.RequestLocation = &location
	}
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day, err := strconv.Atoi(dayStr)
		if err != nil {
			log.Error("failed to convert, field: day", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("failed to convert, field: day"))
			return
		}
		filter.RequestDay = &day
	}

	approvals, err := h.service.ListApprovals(r.Context(), filter)
	if err != nil {
		log.Error("failed to list approvals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list approvals"))
		return
	}

	items := make([]map[string]any, 0, len(approvals))
	for _, approval := range approvals {
		items = append(items, map[string]any{
			"uid":              approval.UID,
			"email":            approval.Email,
			"request_location": approval.RequestLocation,
			"request_day":      approval.RequestDay,
			"status":           approval.Status,
			"created_at":       approval.CreatedAt,
		})
	}

	log.Info("approvals listed", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"approvals": items,
		"count":     len(items),
	}))
}
