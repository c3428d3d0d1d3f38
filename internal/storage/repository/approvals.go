package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/enftlab/enft-backend/internal/models"
)

// CreateApproval вставляет новую заявку в статусе requested и возвращает её UID.
// Частичный уникальный индекс approvals_pending_unique гарантирует не более
// одной ожидающей заявки на пару (email, площадка).
func (s *Storage) CreateApproval(ctx context.Context, approval models.Approval) (string, error) {
	const op = "storage.CreateApproval"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	newID := uuid.New().String()
	query := `INSERT INTO approvals (uid, email, request_location, request_day, status)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		newID, approval.Email, approval.RequestLocation, approval.RequestDay,
		models.ApprovalStatusRequested)
	if err != nil {
		if uniqueViolation(err, "approvals_pending_unique") {
			return "", fmt.Errorf("%s: %w", op, ErrApprovalExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListApprovals возвращает заявки, подходящие под фильтр.
// Любое подмножество полей фильтра может быть задано.
func (s *Storage) ListApprovals(ctx context.Context, filter models.ApprovalFilter) ([]*models.Approval, error) {
	const op = "storage.ListApprovals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, request_location, request_day, status, created_at
			  FROM approvals`
	var conditions []string
	var args []any
	if filter.Email != nil {
		args = append(args, *filter.Email)
		conditions = append(conditions, fmt.Sprintf("email = $%d", len(args)))
	}
	if filter.RequestLocation != nil {
		args = append(args, *filter.RequestLocation)
		conditions = append(conditions, fmt.Sprintf("request_location = $%d", len(args)))
	}
	if filter.RequestDay != nil {
		args = append(args, *filter.RequestDay)
		conditions = append(conditions, fmt.Sprintf("request_day = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Approval
	for rows.Next() {
		var a models.Approval
		if err = rows.Scan(&a.UID, &a.Email, &a.RequestLocation, &a.RequestDay,
			&a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteApproval удаляет заявку по паре (email, площадка) и возвращает
// количество удалённых строк. Совпадение по request_day не требуется.
func (s *Storage) DeleteApproval(ctx context.Context, email, requestLocation string) (int, error) {
	const op = "storage.DeleteApproval"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM approvals WHERE email = $1 AND request_location = $2`
	result, err := s.DB.ExecContext(ctx, query, email, requestLocation)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// MarkApprovalMinted атомарно переводит ожидающую заявку пары
// (email, площадка) в статус minted. Возвращает количество переведённых
// строк: ноль означает, что ожидающей заявки не было — минт без заявки
// допустим, рабочие процессы не связаны транзакционно.
func (s *Storage) MarkApprovalMinted(ctx context.Context, email, requestLocation string) (int, error) {
	const op = "storage.MarkApprovalMinted"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE approvals
			  SET status = $1
			  WHERE email = $2 AND request_location = $3 AND status = $4`
	result, err := s.DB.ExecContext(ctx, query,
		models.ApprovalStatusMinted, email, requestLocation, models.ApprovalStatusRequested)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
