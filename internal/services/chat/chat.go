// Package chat содержит бизнес-логику комнат чата: создание комнат,
// историю и сохранение сообщений, приходящих через websocket-хаб.
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/enftlab/enft-backend/internal/models"
)

// HistoryLimit — сколько последних сообщений отдаётся при подключении.
const HistoryLimit = 50

// Repository определяет методы хранилища для комнат и сообщений чата.
type Repository interface {
	CreateChatRoom(ctx context.Context, roomName string) (*models.ChatRoom, error)
	ListChatRooms(ctx context.Context) ([]*models.ChatRoom, error)
	SaveChatMessage(ctx context.Context, msg models.ChatMessage) (int, error)
	ListChatMessages(ctx context.Context, roomID string, limit int) ([]*models.ChatMessage, error)
}

// Service реализует операции чата.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// CreateRoom создает комнату чата.
func (s *Service) CreateRoom(ctx context.Context, req models.DummyChatRoom) (*models.ChatRoom, error) {
	const op = "services.chat.CreateRoom"
	room, err := s.repo.CreateChatRoom(ctx, req.RoomName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created chat room", slog.String("room_id", room.ID))
	return room, nil
}

// ListRooms возвращает все комнаты чата.
func (s *Service) ListRooms(ctx context.Context) ([]*models.ChatRoom, error) {
	return s.repo.ListChatRooms(ctx)
}

// SaveMessage сохраняет сообщение комнаты.
func (s *Service) SaveMessage(ctx context.Context, msg models.ChatMessage) (int, error) {
	const op = "services.chat.SaveMessage"
	id, err := s.repo.SaveChatMessage(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// History возвращает последние сообщения комнаты.
func (s *Service) History(ctx context.Context, roomID string) ([]*models.ChatMessage, error) {
	return s.repo.ListChatMessages(ctx, roomID, HistoryLimit)
}
