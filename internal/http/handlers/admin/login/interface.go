package login

import (
	"context"
)

type Service interface {
	LoginAdmin(ctx context.Context, email, password string) (string, error)
}
