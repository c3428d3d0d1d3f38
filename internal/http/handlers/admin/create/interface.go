package create

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	CreateAccount(ctx context.Context, req models.DummyAdmin) (models.AdminPublic, error)
}
