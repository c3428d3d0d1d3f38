package models

import "time"

// Статусы заявки на допуск. Заявка создаётся в статусе requested
// и переводится в minted единственным атомарным переходом после
// успешного минта.
const (
	ApprovalStatusRequested = "requested"
	ApprovalStatusMinted    = "minted"
)

// Approval представляет заявку пользователя на допуск к площадке.
// Для одной пары (email, request_location) может существовать не более
// одной заявки в статусе requested.
type Approval struct {
	UID             string    // Уникальный идентификатор заявки
	Email           string    // Email заявителя
	RequestLocation string    // Запрошенная площадка
	RequestDay      int       // Запрошенный срок допуска в днях
	Status          string    // requested или minted
	CreatedAt       time.Time // Дата подачи заявки
}

// ApprovalFilter — фильтр для выборки заявок; любое подмножество полей.
type ApprovalFilter struct {
	Email           *string
	RequestLocation *string
	RequestDay      *int
}

// DummyApproval используется для приёма заявки из JSON-запроса.
type DummyApproval struct {
	RequestLocation string `json:"request_location" validate:"required"`
	RequestDay      int    `json:"request_day" validate:"required,gt=0"`
}
