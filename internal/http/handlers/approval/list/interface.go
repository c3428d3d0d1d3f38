package list

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	ListApprovals(ctx context.Context, filter models.ApprovalFilter) ([]*models.Approval, error)
}
