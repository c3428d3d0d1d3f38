// Package join реализует HTTP-обработчик подключения к комнате чата
// по websocket. После апгрейда клиенту отправляется история комнаты,
// дальнейшие сообщения идут через хаб.
package join

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"

	"github.com/enftlab/enft-backend/internal/http/middlewarectx"
	"github.com/enftlab/enft-backend/internal/http/response"
	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/ws"
)

// Handler обрабатывает websocket-подключения к комнатам чата.
type Handler struct {
	log      *slog.Logger
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, hub *ws.Hub) *Handler {
	return &Handler{
		log: log,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP godoc
// @Summary Подключение к комнате чата
// @Description Апгрейдит соединение до websocket и подключает пользователя к комнате.
// @Tags Chat
// @Param roomID path string true "Идентификатор комнаты"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Security BearerAuth
// @Router /chat/rooms/{roomID}/ws [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.join"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	nickname, ok := r.Context().Value(middlewarectx.Nickname).(string)
	if !ok || nickname == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}
	roomID := chi.URLParam(r, "roomID")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	log.Info("client connected",
		slog.String("room_id", roomID), slog.String("sender", nickname))
	client := ws.NewClient(h.hub, conn, roomID, nickname)
	client.Serve(r.Context())
}
