package dto

import (
	"time"

	"screensynced_backend/internal/models"
)

// RegisterRequest - запрос регистрации.
// Avatar - опциональное изображение в виде base64 data URI.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
	Avatar      string `json:"avatar,omitempty"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult - результат register/login/oauth: санированный пользователь
// и пара токенов. Токены уходят клиенту только в cookie, не в теле ответа.
type AuthResult struct {
	User         PrivateUser
	AccessToken  string
	RefreshToken string
}

// PrivateUser - представление пользователя для владельца аккаунта.
// Хеш пароля, refresh-токен и провайдерские ID сюда не попадают никогда.
type PrivateUser struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SanitizeUser - чистая проекция модели в PrivateUser.
// Исходная запись не мутируется.
func SanitizeUser(u *models.User) PrivateUser {
	return PrivateUser{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
