// Package models содержит доменные структуры обучающей платформы:
// пользователи, курсы, уроки, подписки и платежи,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleUser      = "user"      // Обычный пользователь
	RoleModerator = "moderator" // Модератор
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string     `json:"uid"`          // Уникальный идентификатор пользователя
	Email        string     `json:"email"`        // Электронная почта (уникальная)
	PhoneNumber  string     `json:"phone_number"` // Телефон (опционально)
	City         string     `json:"city"`         // Город (опционально)
	AvatarURL    string     `json:"avatar_url"`   // Ссылка на аватар (опционально)
	PasswordHash string     `json:"-"`            // Хэш пароля
	Role         string     `json:"role"`         // Роль: user или moderator
	IsActive     bool       `json:"is_active"`    // Флаг активности учётной записи
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsModerator сообщает, принадлежит ли пользователь к роли модераторов.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
