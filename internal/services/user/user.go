// Package user содержит бизнес-логику справочника пользователей
// и журнала заявок на допуск.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/enftlab/enft-backend/internal/chain"
	"github.com/enftlab/enft-backend/internal/lib/minttoken"
	"github.com/enftlab/enft-backend/internal/lib/password"
	"github.com/enftlab/enft-backend/internal/metrics"
	"github.com/enftlab/enft-backend/internal/models"
	"github.com/enftlab/enft-backend/internal/storage/repository"
)

// Repository определяет методы хранилища для пользователей,
// кошельков и заявок на допуск.
type Repository interface {
	// RegisterUser сохраняет пользователя и, опционально, кошелёк в одной транзакции.
	RegisterUser(ctx context.Context, user models.User, wallet *models.Wallet) (string, error)
	// GetUserByEmail возвращает пользователя или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByNickname возвращает пользователя или repository.ErrNotFound.
	GetUserByNickname(ctx context.Context, nickname string) (*models.User, error)
	// GetWalletByEmail возвращает кошелёк или repository.ErrNotFound.
	GetWalletByEmail(ctx context.Context, email string) (*models.Wallet, error)
	// CreateApproval вставляет заявку в статусе requested.
	CreateApproval(ctx context.Context, approval models.Approval) (string, error)
	// ListApprovals возвращает заявки по фильтру.
	ListApprovals(ctx context.Context, filter models.ApprovalFilter) ([]*models.Approval, error)
	// DeleteApproval удаляет заявку по паре (email, площадка).
	DeleteApproval(ctx context.Context, email, requestLocation string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// KeyringGenerator создает новый keyring внешнего реестра.
type KeyringGenerator func() (chain.Keyring, error)

// Service реализует операции справочника пользователей и журнала заявок.
type Service struct {
	repo        Repository
	cache       Cache
	newKeyring  KeyringGenerator
	log         *slog.Logger
	legacyCheck bool
}

// New создает новый Service.
//
// legacyCheck включает историческое поведение проверки дубликатов заявок:
// любая повторная заявка пользователя отклоняется независимо от площадки.
func New(repo Repository, cache Cache, newKeyring KeyringGenerator, log *slog.Logger, legacyCheck bool) *Service {
	return &Service{
		repo:        repo,
		cache:       cache,
		newKeyring:  newKeyring,
		log:         log,
		legacyCheck: legacyCheck,
	}
}

// Register создает нового пользователя: хэширует пароль, выпускает
// отдельный signing key, для администраторов генерирует keyring
// и сохраняет кошелёк вместе с пользователем в одной транзакции.
//
// Прикладные проверки занятости email и никнейма (email первым) —
// только ранний выход; настоящий инвариант держат ограничения
// уникальности в хранилище.
func (s *Service) Register(ctx context.Context, req models.DummyUser) (string, error) {
	const op = "services.user.Register"

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return "", fmt.Errorf("%s: %w", op, repository.ErrEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.GetUserByNickname(ctx, req.Nickname); err == nil {
		return "", fmt.Errorf("%s: %w", op, repository.ErrNicknameTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	signingKey, err := minttoken.GenerateSigningKey()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var wallet *models.Wallet
	if req.IsAdmin {
		keyring, err := s.newKeyring()
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		wallet = &models.Wallet{
			Email:      req.Email,
			Address:    keyring.Address,
			PrivateKey: keyring.PrivateKey,
		}
	}

	user := models.User{
		Email:        req.Email,
		Nickname:     req.Nickname,
		PasswordHash: hashed,
		SigningKey:   signingKey,
		Location:     req.Location,
		IsAdmin:      req.IsAdmin,
	}
	uid, err := s.repo.RegisterUser(ctx, user, wallet)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user",
		slog.String("email", req.Email), slog.Bool("is_admin", req.IsAdmin))
	metrics.RegisteredUsers.WithLabelValues(strconv.FormatBool(req.IsAdmin)).Inc()
	return uid, nil
}

// CheckEmail — чистая проверка занятости email, хранилище не изменяется.
func (s *Service) CheckEmail(ctx context.Context, email string) (models.Availability, error) {
	const op = "services.user.CheckEmail"
	_, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Availability{Usable: true, Message: "email is available"}, nil
	}
	if err != nil {
		return models.Availability{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.Availability{Usable: false, Message: "email already registered"}, nil
}

// CheckNickname — чистая проверка занятости никнейма.
func (s *Service) CheckNickname(ctx context.Context, nickname string) (models.Availability, error) {
	const op = "services.user.CheckNickname"
	_, err := s.repo.GetUserByNickname(ctx, nickname)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Availability{Usable: true, Message: "nickname is available"}, nil
	}
	if err != nil {
		return models.Availability{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.Availability{Usable: false, Message: "nickname already registered"}, nil
}

// FindByEmail возвращает пользователя по email, с кэшированием.
func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	cacheKey := fmt.Sprintf("user:%s", email)
	var cached models.User
	if found, err := s.cache.Get(cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, user, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return user, nil
}

// FindWallet возвращает кошелёк пользователя, с кэшированием:
// кошельки неизменяемы после создания.
func (s *Service) FindWallet(ctx context.Context, email string) (*models.Wallet, error) {
	cacheKey := fmt.Sprintf("wallet:%s", email)
	var cached models.Wallet
	if found, err := s.cache.Get(cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	wallet, err := s.repo.GetWalletByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, wallet, time.Hour); err != nil {
		s.log.Warn("failed to cache wallet", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return wallet, nil
}

// RequestApproval создает заявку на допуск. Дубликатом считается
// ожидающая заявка того же пользователя на ту же площадку; при
// включённом legacy-режиме — любая ожидающая заявка пользователя.
// Ранняя проверка дублирует уникальный индекс хранилища и служит
// только быстрым выходом.
func (s *Service) RequestApproval(ctx context.Context, email string, req models.DummyApproval) (string, error) {
	const op = "services.user.RequestApproval"

	existing, err := s.repo.ListApprovals(ctx, models.ApprovalFilter{Email: &email})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	for _, approval := range existing {
		if approval.Status != models.ApprovalStatusRequested {
			continue
		}
		if s.legacyCheck || approval.RequestLocation == req.RequestLocation {
			return "", fmt.Errorf("%s: %w", op, repository.ErrApprovalExists)
		}
	}

	uid, err := s.repo.CreateApproval(ctx, models.Approval{
		Email:           email,
		RequestLocation: req.RequestLocation,
		RequestDay:      req.RequestDay,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("approval requested",
		slog.String("email", email), slog.String("location", req.RequestLocation))
	metrics.ApprovalRequests.Inc()
	return uid, nil
}

// CompleteApproval удаляет заявку по паре (email, площадка) и возвращает
// количество удалённых записей.
func (s *Service) CompleteApproval(ctx context.Context, email, requestLocation string) (int, error) {
	const op = "services.user.CompleteApproval"
	removed, err := s.repo.DeleteApproval(ctx, email, requestLocation)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return removed, nil
}

// ListApprovals возвращает заявки по фильтру.
func (s *Service) ListApprovals(ctx context.Context, filter models.ApprovalFilter) ([]*models.Approval, error) {
	return s.repo.ListApprovals(ctx, filter)
}
