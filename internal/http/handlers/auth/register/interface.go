package register

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	Register(ctx context.Context, req models.DummyUser) (string, error)
}
