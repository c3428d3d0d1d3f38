package login

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	LoginUser(ctx context.Context, email, password string) (string, *models.User, error)
}
