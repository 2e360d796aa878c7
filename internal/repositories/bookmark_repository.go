package repositories

import (
	"errors"

	"gorm.io/gorm"

	"screensynced_backend/internal/models"
)

var (
	ErrBookmarkNotFound      = errors.New("bookmark not found")
	ErrBookmarkAlreadyExists = errors.New("bookmark already exists")
)

// BookmarkRepository - хранилище закладок пользователя
type BookmarkRepository interface {
	Create(bookmark *models.Bookmark) error
	FindByID(id uint) (*models.Bookmark, error)
	FindByUserID(userID uint) ([]models.Bookmark, error)
	Delete(id uint) error
}

type BookmarkRepositoryImpl struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &BookmarkRepositoryImpl{db: db}
}

func (r *BookmarkRepositoryImpl) Create(bookmark *models.Bookmark) error {
	var existing models.Bookmark
	err := r.db.Where("user_id = ? AND media_id = ? AND media_type = ?",
		bookmark.UserID, bookmark.MediaID, bookmark.MediaType).
		First(&existing).Error
	if err == nil {
		return ErrBookmarkAlreadyExists
	}

	return r.db.Create(bookmark).Error
}

func (r *BookmarkRepositoryImpl) FindByID(id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.First(&bookmark, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookmarkNotFound
		}
		return nil, err
	}
	return &bookmark, nil
}

func (r *BookmarkRepositoryImpl) FindByUserID(userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

func (r *BookmarkRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.Bookmark{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}
