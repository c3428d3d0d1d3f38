package models

import "time"

// ChatRoom представляет комнату чата между пользователями площадки.
type ChatRoom struct {
	ID       string `json:"id"`
	RoomName string `json:"room_name"`
}

// ChatMessage — сообщение в комнате чата.
type ChatMessage struct {
	ID     int       `json:"id"`
	RoomID string    `json:"room_id"`
	Sender string    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// DummyChatRoom используется для приёма данных создания комнаты из JSON-запроса.
type DummyChatRoom struct {
	RoomName string `json:"room_name" validate:"required,min=1,max=100"`
}
