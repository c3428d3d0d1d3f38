package complete

import (
	"context"
)

type Service interface {
	CompleteApproval(ctx context.Context, email, requestLocation string) (int, error)
}
