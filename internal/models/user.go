// Package models содержит доменные модели биржи фриланс-заданий:
// пользователей, сессии, задания и профили. Структуры используются
// в бизнес-логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID              int        // Уникальный идентификатор пользователя
	Name            string     // Имя пользователя
	Email           string     // Электронная почта (уникальная)
	Phone           *string    // Телефон (опционально)
	Role            string     // Роль пользователя, client или worker
	PasswordHash    string     // Хэш пароля пользователя
	Bio             *string    // Короткое описание профиля
	AvatarURL       *string    // Ссылка на аватар
	Specializations *string    // Список специализаций через запятую
	Rating          *float64   // Средний рейтинг по отзывам
	CreatedAt       *time.Time // Дата регистрации
}

// PublicUser — представление пользователя в ответах API,
// без хэша пароля и служебных полей.
type PublicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public возвращает представление пользователя без чувствительных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
