package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/enftlab/enft-backend/internal/models"
)

// CreateChatRoom создаёт новую комнату чата и возвращает её.
func (s *Storage) CreateChatRoom(ctx context.Context, roomName string) (*models.ChatRoom, error) {
	const op = "storage.CreateChatRoom"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	room := &models.ChatRoom{
		ID:       uuid.New().String(),
		RoomName: roomName,
	}
	query := `INSERT INTO chat_rooms (id, room_name) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, room.ID, room.RoomName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return room, nil
}

// ListChatRooms возвращает все комнаты чата.
func (s *Storage) ListChatRooms(ctx context.Context) ([]*models.ChatRoom, error) {
	const op = "storage.ListChatRooms"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, room_name FROM chat_rooms ORDER BY room_name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ChatRoom
	for rows.Next() {
		var room models.ChatRoom
		if err = rows.Scan(&room.ID, &room.RoomName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &room)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SaveChatMessage сохраняет сообщение комнаты и возвращает его ID.
func (s *Storage) SaveChatMessage(ctx context.Context, msg models.ChatMessage) (int, error) {
	const op = "storage.SaveChatMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO chat_messages (room_id, sender, text)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		msg.RoomID, msg.Sender, msg.Text).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListChatMessages возвращает последние limit сообщений комнаты
// в хронологическом порядке.
func (s *Storage) ListChatMessages(ctx context.Context, roomID string, limit int) ([]*models.ChatMessage, error) {
	const op = "storage.ListChatMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, room_id, sender, text, sent_at
			  FROM (
			      SELECT id, room_id, sender, text, sent_at
			      FROM chat_messages
			      WHERE room_id = $1
			      ORDER BY id DESC
			      LIMIT $2
			  ) AS latest
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err = rows.Scan(&msg.ID, &msg.RoomID, &msg.Sender, &msg.Text, &msg.SentAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &msg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
