package request

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	RequestApproval(ctx context.Context, email string, req models.DummyApproval) (string, error)
}
