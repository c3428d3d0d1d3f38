// Package listrooms реализует HTTP-обработчик списка комнат чата.
package listrooms

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы списка комнат.
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
// @Summary Список комнат чата
// @Tags Chat
// @Produce  json
// @Success 200 {object} map[string]any "Список комнат"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /chat/rooms [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.listrooms"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rooms, err := h.service.ListRooms(r.Context())
	if err != nil {
		log.Error("failed to list rooms", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list rooms"))
		return
	}

	log.Info("rooms listed", slog.Int("count", len(rooms)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"rooms": rooms,
		"count": len(rooms),
	}))
}
