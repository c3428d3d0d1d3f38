// Package admin содержит бизнес-логику справочника администраторов.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/enftlab/enft-backend/internal/chain"
	"github.com/enftlab/enft-backend/internal/lib/minttoken"
	"github.com/enftlab/enft-backend/internal/lib/password"
	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

// Repository определяет методы хранилища для администраторов.
type Repository interface {
	// CreateAdmin сохраняет администратора и возвращает его UID.
	CreateAdmin(ctx context.Context, admin models.Admin) (string, error)
	// GetAdminByEmail возвращает администратора или repository.ErrNotFound.
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// KeyringGenerator создает новый keyring внешнего реестра.
type KeyringGenerator func() (chain.Keyring, error)

// Service реализует операции справочника администраторов.
type Service struct {
	repo       Repository
	newKeyring KeyringGenerator
	log        *slog.Logger
}

// New создает новый Service.
func New(repo Repository, newKeyring KeyringGenerator, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		newKeyring: newKeyring,
		log:        log,
	}
}

// CreateAccount создает учётную запись администратора: хэширует пароль,
// выпускает signing key, генерирует keyring и возвращает представление
// без секретов. Настоящий инвариант уникальности email держит хранилище.
func (s *Service) CreateAccount(ctx context.Context, req models.DummyAdmin) (models.AdminPublic, error) {
	const op = "services.admin.CreateAccount"

	if _, err := s.repo.GetAdminByEmail(ctx, req.Email); err == nil {
		return models.AdminPublic{}, fmt.Errorf("%s: %w", op, repository.ErrAdminExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.AdminPublic{}, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return models.AdminPublic{}, fmt.Errorf("%s: %w", op, err)
	}
	signingKey, err := minttoken.GenerateSigningKey()
	if err != nil {
		return models.AdminPublic{}, fmt.Errorf("%s: %w", op, err)
	}
	keyring, err := s.newKeyring()
	if err != nil {
		return models.AdminPublic{}, fmt.Errorf("%s: %w", op, err)
	}

	admin := models.Admin{
		Email:        req.Email,
		PasswordHash: hashed,
		SigningKey:   signingKey,
		Address:      keyring.Address,
		PrivateKey:   keyring.PrivateKey,
		Location:     req.Location,
	}
	uid, err := s.repo.CreateAdmin(ctx, admin)
	if err != nil {
		return models.AdminPublic{}, fmt.Errorf("%s: %w", op, err)
	}
	admin.UID = uid

	s.log.Info("created admin account",
		slog.String("email", req.Email), slog.String("location", req.Location))
	return admin.Public(), nil
}

// FindByEmail возвращает администратора по email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.repo.GetAdminByEmail(ctx, email)
}
