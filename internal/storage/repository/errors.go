package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки дублирования, поднимаемые ограничениями уникальности схемы.
// Сервисный слой транслирует их в клиентские forbidden-ответы.
var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrNicknameTaken  = errors.New("nickname already registered")
	ErrAdminExists    = errors.New("admin already registered")
	ErrApprovalExists = errors.New("approval already requested")

	// ErrNotFound возвращается методами чтения вместо sql.ErrNoRows.
	ErrNotFound = errors.New("record not found")
)

// uniqueViolation сообщает, нарушено ли именованное ограничение уникальности.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraint
}
