package listrooms

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	ListRooms(ctx context.Context) ([]*models.ChatRoom, error)
}
