// Package token генерирует непрозрачные токены сессий.
//
// Токен — 32 случайных байта из криптографического генератора,
// закодированных в URL-safe base64 без набивки. Токен непредсказуем
// и сам по себе не несёт никакой информации о пользователе.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Size — количество случайных байт в токене (256 бит энтропии).
const Size = 32

// New возвращает новый токен сессии.
func New() (string, error) {
	const op = "token.New"
	buf := make([]byte, Size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
