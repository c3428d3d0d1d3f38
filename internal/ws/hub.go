// Package ws реализует websocket-хаб чата: регистрацию клиентов по комнатам,
// рассылку сообщений участникам комнаты и сохранение сообщений в хранилище.
package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/enftlab/enft-backend/internal/lib/sl"
	"github.com/enftlab/enft-backend/internal/models"
)

// MessageStore описывает сохранение и выборку сообщений чата.
type MessageStore interface {
	SaveMessage(ctx context.Context, msg models.ChatMessage) (int, error)
	History(ctx context.Context, roomID string) ([]*models.ChatMessage, error)
}

// inbound — сообщение клиента, ожидающее сохранения и рассылки.
type inbound struct {
	client *Client
	msg    models.ChatMessage
}

// Hub управляет клиентами всех комнат чата.
type Hub struct {
	store MessageStore
	log   *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan inbound
}

// NewHub создает новый Hub.
func NewHub(store MessageStore, log *slog.Logger) *Hub {
	return &Hub{
		store:      store,
		log:        log,
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan inbound, 64),
	}
}

// Run обрабатывает события хаба до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case in := <-h.broadcast:
			h.dispatch(ctx, in)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[client.roomID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[client.roomID] = room
	}
	room[client] = struct{}{}
	h.log.Info("client joined room",
		slog.String("room_id", client.roomID), slog.String("sender", client.sender))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[client.roomID]
	if !ok {
		return
	}
	if _, ok := room[client]; ok {
		delete(room, client)
		close(client.send)
		if len(room) == 0 {
			delete(h.rooms, client.roomID)
		}
	}
}

// dispatch сохраняет сообщение и рассылает его участникам комнаты.
// Несохраненное сообщение не рассылается.
func (h *Hub) dispatch(ctx context.Context, in inbound) {
	id, err := h.store.SaveMessage(ctx, in.msg)
	if err != nil {
		h.log.Error("failed to save chat message", sl.Err(err),
			slog.String("room_id", in.msg.RoomID))
		return
	}
	in.msg.ID = id

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[in.msg.RoomID] {
		select {
		case client.send <- in.msg:
		default:
			// Медленный клиент: буфер переполнен, соединение закрывается.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for roomID, room := range h.rooms {
		for client := range room {
			close(client.send)
		}
		delete(h.rooms, roomID)
	}
}
