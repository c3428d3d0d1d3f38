// Package minttoken реализует подпись и проверку admission-токенов —
// временных credential'ов на допуск к площадке, которые встраиваются
// в NFT при минте.
//
// Токен содержит площадку и календарные даты начала и конца действия
// (без времени суток); срок действия подписи равен запрошенному числу
// дней. Секрет подписи — отдельный signing key подписанта, не связанный
// с его паролем.
package minttoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DateLayout — формат календарных дат в claims токена.
const DateLayout = "2006-01-02"

// Claims описывает полезную нагрузку admission-токена.
type Claims struct {
	Place                string `json:"place"`      // Площадка допуска
	StartDate            string `json:"start_date"` // Первый день действия
	EndDate              string `json:"end_date"`   // Последний день действия
	jwt.RegisteredClaims        // ExpiresAt = start + day суток
}

// Sign формирует подписанный admission-токен для площадки place
// сроком на day дней, начиная с текущей даты.
func Sign(place string, day int, secret string) (string, error) {
	return SignAt(place, day, secret, time.Now())
}

// SignAt — вариант Sign с явной точкой отсчёта, используется в тестах.
func SignAt(place string, day int, secret string, now time.Time) (string, error) {
	const op = "minttoken.Sign"
	claims := Claims{
		Place:     place,
		StartDate: now.Format(DateLayout),
		EndDate:   now.AddDate(0, 0, day).Format(DateLayout),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.AddDate(0, 0, day)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// GenerateSigningKey возвращает случайный 256-битный секрет подписи в hex.
// Секрет выдаётся каждому подписанту отдельно и не связан с его паролем.
func GenerateSigningKey() (string, error) {
	const op = "minttoken.GenerateSigningKey"
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}

// Parse проверяет подпись и срок действия admission-токена
// и возвращает его claims.
func Parse(tokenStr, secret string) (*Claims, error) {
	const op = "minttoken.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
