package models

import "time"

// Session представляет авторизованный вход пользователя.
// Несколько одновременных сессий для одного пользователя допустимы.
type Session struct {
	ID           int        // Идентификатор записи сессии
	UserID       int        // Владелец сессии
	Token        string     // Непредсказуемый bearer-токен (уникальный)
	ExpiresAt    time.Time  // Момент истечения срока действия
	LastActivity *time.Time // Время последней проверки токена
}

// SessionInfo — результат поиска сессии по токену вместе с данными
// владельца. Используется при проверке bearer-токена.
type SessionInfo struct {
	SessionID int
	UserID    int
	Name      string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// SessionUser — владелец подтверждённой сессии в ответах API.
type SessionUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
