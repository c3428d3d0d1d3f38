package checknickname

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	CheckNickname(ctx context.Context, nickname string) (models.Availability, error)
}
