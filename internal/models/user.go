package models

import "time"

// User - учетная запись пользователя.
// PasswordHash пустой для пользователей, созданных через OAuth без пароля.
// RefreshToken - единственный действующий refresh-токен пользователя;
// пустая строка означает отсутствие активной сессии.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string
	DisplayName  string
	Avatar       string
	GoogleID     *string `gorm:"uniqueIndex"`
	FacebookID   *string `gorm:"uniqueIndex"`
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Bookmarks []Bookmark `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// OAuthProvider - внешний провайдер аутентификации
type OAuthProvider string

const (
	ProviderGoogle   OAuthProvider = "google"
	ProviderFacebook OAuthProvider = "facebook"
)

// providerFields - таблица доступа к полям провайдеров.
// Новый провайдер добавляется новой записью в таблицу,
// без ветвлений и без динамической подстановки имен полей.
var providerFields = map[OAuthProvider]struct {
	get func(*User) *string
	set func(*User, string)
}{
	ProviderGoogle: {
		get: func(u *User) *string { return u.GoogleID },
		set: func(u *User, id string) { u.GoogleID = &id },
	},
	ProviderFacebook: {
		get: func(u *User) *string { return u.FacebookID },
		set: func(u *User, id string) { u.FacebookID = &id },
	},
}

// Valid проверяет, что провайдер известен системе
func (p OAuthProvider) Valid() bool {
	_, ok := providerFields[p]
	return ok
}

// ProviderID возвращает привязанный ID провайдера, если он есть
func (u *User) ProviderID(p OAuthProvider) (string, bool) {
	f, ok := providerFields[p]
	if !ok {
		return "", false
	}
	id := f.get(u)
	if id == nil || *id == "" {
		return "", false
	}
	return *id, true
}

// SetProviderID привязывает ID провайдера к пользователю.
// Повторная привязка того же ID - no-op.
func (u *User) SetProviderID(p OAuthProvider, id string) {
	f, ok := providerFields[p]
	if !ok {
		return
	}
	if current := f.get(u); current != nil && *current == id {
		return
	}
	f.set(u, id)
}
