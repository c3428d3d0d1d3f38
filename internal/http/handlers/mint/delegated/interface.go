package delegated

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/services/mint"
)

type Service interface {
	MintDelegated(ctx context.Context, adminEmail, place string, req mint.Request) (*models.MintReceipt, error)
}
