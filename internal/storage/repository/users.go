package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/enftlab/enft-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя и, для администраторов,
// его кошелёк в одной транзакции. Возвращает UID пользователя.
// Частичная запись (пользователь без кошелька или наоборот) невозможна.
func (s *Storage) RegisterUser(ctx context.Context, user models.User, wallet *models.Wallet) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID string
	query := `INSERT INTO users (email, nickname, password_hash, signing_key, location, is_admin)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := tx.QueryRowContext(ctx, query,
		user.Email, user.Nickname, user.PasswordHash, user.SigningKey,
		user.Location, user.IsAdmin).Scan(&newID); err != nil {
		switch {
		case uniqueViolation(err, "users_email_key"):
			return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		case uniqueViolation(err, "users_nickname_key"):
			return "", fmt.Errorf("%s: %w", op, ErrNicknameTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if wallet != nil {
		query = `INSERT INTO wallets (email, address, private_key)
				 VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, query,
			wallet.Email, wallet.Address, wallet.PrivateKey); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по email или ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, nickname, password_hash, signing_key, location, is_admin, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Email, &u.Nickname, &u.PasswordHash,
		&u.SigningKey, &u.Location, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByNickname возвращает пользователя по никнейму или ErrNotFound.
func (s *Storage) GetUserByNickname(ctx context.Context, nickname string) (*models.User, error) {
	const op = "storage.GetUserByNickname"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, nickname, password_hash, signing_key, location, is_admin, created_at
			  FROM users
			  WHERE nickname = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, nickname)
	if err := row.Scan(&u.UID, &u.Email, &u.Nickname, &u.PasswordHash,
		&u.SigningKey, &u.Location, &u.IsAdmin, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetWalletByEmail возвращает кошелёк пользователя или ErrNotFound,
// если пользователь не администратор и кошелька у него нет.
func (s *Storage) GetWalletByEmail(ctx context.Context, email string) (*models.Wallet, error) {
	const op = "storage.GetWalletByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, address, private_key
			  FROM wallets
			  WHERE email = $1`
	w := &models.Wallet{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&w.Email, &w.Address, &w.PrivateKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

// CountWalletsByEmail возвращает количество кошельков пользователя.
func (s *Storage) CountWalletsByEmail(ctx context.Context, email string) (int, error) {
	const op = "storage.CountWalletsByEmail"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM wallets WHERE email = $1`
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
