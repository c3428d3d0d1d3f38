package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/enftlab/enft-backend/internal/models"
)

// CreateAdmin сохраняет нового администратора и возвращает его UID.
func (s *Storage) CreateAdmin(ctx context.Context, admin models.Admin) (string, error) {
	const op = "storage.CreateAdmin"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO admins (email, password_hash, signing_key, address, private_key, location)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		admin.Email, admin.PasswordHash, admin.SigningKey, admin.Address,
		admin.PrivateKey, admin.Location).Scan(&newID); err != nil {
		if uniqueViolation(err, "admins_email_key") {
			return "", fmt.Errorf("%s: %w", op, ErrAdminExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetAdminByEmail возвращает администратора по email или ErrNotFound.
func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "storage.GetAdminByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, signing_key, address, private_key, location, created_at
			  FROM admins
			  WHERE email = $1`
	a := &models.Admin{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&a.UID, &a.Email, &a.PasswordHash, &a.SigningKey,
		&a.Address, &a.PrivateKey, &a.Location, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
