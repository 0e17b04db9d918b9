// Package password реализует хеширование и проверку паролей.
//
// Текущая схема хранения — hex-представление SHA-256 от пароля:
// детерминированная, одинаковый пароль всегда даёт одинаковый дайджест.
// Для обратной совместимости Verify принимает и старые bcrypt-хэши,
// оставшиеся от прежней схемы; такие записи перехэшируются при логине.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hash возвращает hex-дайджест SHA-256 от пароля.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsLegacy сообщает, хранится ли дайджест в старом bcrypt-формате.
func IsLegacy(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") ||
		strings.HasPrefix(digest, "$2b$") ||
		strings.HasPrefix(digest, "$2y$")
}

// Verify проверяет пароль против сохранённого дайджеста.
// Поддерживает оба формата: текущий SHA-256 и устаревший bcrypt.
func Verify(password, digest string) bool {
	if IsLegacy(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}
	computed := Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
