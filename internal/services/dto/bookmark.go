package dto

// CreateBookmarkRequest - добавление закладки.
// MediaID - идентификатор из TMDB API.
type CreateBookmarkRequest struct {
	MediaID   int    `json:"mediaId" binding:"required"`
	MediaType string `json:"mediaType" binding:"required,oneof=movie tv"`
}
