package self

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/services/mint"
)

type Service interface {
	MintForUser(ctx context.Context, signerEmail string, req mint.Request) (*models.MintReceipt, error)
}
