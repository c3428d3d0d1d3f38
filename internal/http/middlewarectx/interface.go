package middlewarectx

import (
	"context"

	"github.com/enftlab/enft-backend/internal/lib/jwt"
)

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error)
}
