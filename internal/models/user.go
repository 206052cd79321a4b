// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"-"`          // Уникальный идентификатор пользователя
	Username     string    `json:"username"`   // Имя пользователя (уникальное, неизменяемое)
	Email        string    `json:"email"`      // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`          // Хэш пароля, никогда не попадает в ответы и логи
	CreatedAt    time.Time `json:"created_at"` // Дата регистрации
}
