package checkemail

import (
	"context"

	"github.com/enftlab/enft-backend/internal/models"
)

type Service interface {
	CheckEmail(ctx context.Context, email string) (models.Availability, error)
}
