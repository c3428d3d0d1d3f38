package createroom

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	CreateRoom(ctx context.Context, req models.DummyChatRoom) (*models.ChatRoom, error)
}
