// Package auth содержит логику аутентификации пользователей
// и администраторов и валидацию сессионных JWT.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/enftlab/enft-backend/internal/lib/jwt"
	"github.com/enftlab/enft-backend/internal/lib/password"
	"github.com/enftlab/enft-backend/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserDirectory описывает доступ к справочнику пользователей.
type UserDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AdminDirectory описывает доступ к справочнику администраторов.
type AdminDirectory interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Service отвечает за вход и валидацию сессионных токенов.
type Service struct {
	users    UserDirectory
	admins   AdminDirectory
	jwtMaker jwt.Maker
}

// New создает новый Service.
func New(users UserDirectory, admins AdminDirectory, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		admins:   admins,
		jwtMaker: jwtMaker,
	}
}

// LoginUser проверяет пароль пользователя и выдает сессионный JWT.
// Пользователи с IsAdmin получают роль admin.
func (s *Service) LoginUser(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.LoginUser"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	role := jwt.RoleUser
	if user.IsAdmin {
		role = jwt.RoleAdmin
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Nickname, role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// LoginAdmin проверяет пароль администратора из отдельного справочника
// и выдает сессионный JWT с ролью admin.
func (s *Service) LoginAdmin(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.LoginAdmin"
	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := password.CompareHash(admin.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	token, err := s.jwtMaker.GenerateToken(admin.Email, admin.Email, jwt.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ValidateToken проверяет сессионный JWT и возвращает его claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
