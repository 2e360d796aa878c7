package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Auth ---

// ErrUserAlreadyExists - email уже занят другим аккаунтом.
var ErrUserAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User already exists",
	http.StatusConflict, // 409
)

// ErrUserNotFound - пользователь с таким email не зарегистрирован.
var ErrUserNotFound = New(
	CodeNotFound,
	"auth",
	"User not found",
	http.StatusNotFound, // 404
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized, // 401
)

// ErrInvalidToken - неверный или просроченный токен (access или refresh).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized, // 401
)

// ErrInvalidRefreshToken - refresh-токен отозван, просрочен или неизвестен.
// Отдельное сообщение, т.к. клиент должен заново пройти логин.
var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid refresh token, please log in again",
	http.StatusUnauthorized, // 401
)

// ErrPasswordsDoNotMatch - новый пароль и подтверждение не совпадают.
var ErrPasswordsDoNotMatch = New(
	CodeForbidden,
	"auth",
	"Passwords do not match",
	http.StatusForbidden, // 403
)

// --- Bookmarks ---

// ErrBookmarkAlreadyExists - закладка на этот mediaId уже есть у пользователя.
var ErrBookmarkAlreadyExists = New(
	CodeAlreadyExists,
	"bookmarks",
	"Bookmark already exists",
	http.StatusConflict, // 409
)

// ErrBookmarkNotFound - закладка не найдена.
var ErrBookmarkNotFound = New(
	CodeNotFound,
	"bookmarks",
	"Bookmark not found",
	http.StatusNotFound, // 404
)

// ErrBookmarkAccessDenied - закладка принадлежит другому пользователю.
var ErrBookmarkAccessDenied = New(
	CodeForbidden,
	"bookmarks",
	"Access to resources denied",
	http.StatusForbidden, // 403
)
