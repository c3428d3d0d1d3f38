package models

import "time"

// Admin представляет учётную запись администратора площадки.
// Администратор выступает подписантом fee-delegated минтов.
type Admin struct {
	UID          string    // Уникальный идентификатор
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля
	SigningKey   string    // Отдельный секрет для подписи admission-токенов
	Address      string    // Адрес аккаунта администратора в блокчейне
	PrivateKey   string    // Приватный ключ аккаунта
	Location     string    // Площадка администратора
	CreatedAt    time.Time // Дата создания
}

// AdminPublic — представление администратора без секретов,
// возвращаемое наружу после создания учётной записи.
type AdminPublic struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Location string `json:"location"`
}

// Public возвращает представление администратора без пароля и ключей.
func (a *Admin) Public() AdminPublic {
	return AdminPublic{
		UID:      a.UID,
		Email:    a.Email,
		Address:  a.Address,
		Location: a.Location,
	}
}

// DummyAdmin используется для приёма данных создания администратора из JSON-запроса.
type DummyAdmin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Location string `json:"location" validate:"required"`
}
