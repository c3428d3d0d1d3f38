// Package models содержит доменные структуры системы допусков:
// пользователей, кошельки, заявки на допуск и администраторов.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная)
	Nickname     string    // Никнейм (уникальный)
	PasswordHash string    // Хэш пароля пользователя
	SigningKey   string    // Отдельный секрет для подписи admission-токенов
	Location     string    // Площадка, к которой привязан пользователь
	IsAdmin      bool      // Признак администратора площадки
	CreatedAt    time.Time // Дата регистрации
}

// Wallet представляет блокчейн-кошелёк пользователя-администратора.
// Создаётся только при регистрации пользователя с IsAdmin.
type Wallet struct {
	Email      string // Email владельца (один кошелёк на пользователя)
	Address    string // Адрес аккаунта в блокчейне
	PrivateKey string // Приватный ключ аккаунта
}

// DummyUser используется для приёма данных регистрации из JSON-запроса,
// прежде чем конвертировать их в User.
type DummyUser struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=6"`
	Location string `json:"location" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// Availability — результат проверки занятости email или никнейма.
type Availability struct {
	Usable  bool   `json:"usable"`
	Message string `json:"message"`
}
