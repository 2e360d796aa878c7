package models

import "time"

// Типы медиа-контента (идентификаторы приходят из TMDB)
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// Bookmark - закладка пользователя на фильм или сериал.
// Пара (UserID, MediaID, MediaType) уникальна.
type Bookmark struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index;uniqueIndex:idx_user_media"`
	MediaID   int    `gorm:"not null;uniqueIndex:idx_user_media"`
	MediaType string `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_media"`
	CreatedAt time.Time
}
