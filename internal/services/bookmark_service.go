package services

import (
	"context"

	"screensynced_backend/internal/models"
	"screensynced_backend/internal/repositories"
	"screensynced_backend/internal/services/dto"
	"screensynced_backend/pkg/apperrors"
)

// BookmarkService - закладки пользователя на фильмы и сериалы.
// Все операции ограничены записями владельца.
type BookmarkService interface {
	Create(ctx context.Context, userID uint, req *dto.CreateBookmarkRequest) (*models.Bookmark, error)
	List(ctx context.Context, userID uint) ([]models.Bookmark, error)
	GetByID(ctx context.Context, userID, bookmarkID uint) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID uint) error
}

type BookmarkServiceImpl struct {
	bookmarkRepo repositories.BookmarkRepository
}

func NewBookmarkService(bookmarkRepo repositories.BookmarkRepository) BookmarkService {
	return &BookmarkServiceImpl{bookmarkRepo: bookmarkRepo}
}

func (s *BookmarkServiceImpl) Create(ctx context.Context, userID uint, req *dto.CreateBookmarkRequest) (*models.Bookmark, error) {
	bookmark := &models.Bookmark{
		UserID:    userID,
		MediaID:   req.MediaID,
		MediaType: req.MediaType,
	}

	if err := s.bookmarkRepo.Create(bookmark); err != nil {
		if apperrors.Is(err, repositories.ErrBookmarkAlreadyExists) {
			return nil, apperrors.ErrBookmarkAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	return bookmark, nil
}

func (s *BookmarkServiceImpl) List(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	bookmarks, err := s.bookmarkRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookmarks, nil
}

// GetByID возвращает закладку владельца.
// Чужая закладка неотличима от несуществующей - 404 в обоих случаях.
func (s *BookmarkServiceImpl) GetByID(ctx context.Context, userID, bookmarkID uint) (*models.Bookmark, error) {
	bookmark, err := s.bookmarkRepo.FindByID(bookmarkID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookmarkNotFound) {
			return nil, apperrors.ErrBookmarkNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if bookmark.UserID != userID {
		return nil, apperrors.ErrBookmarkNotFound
	}
	return bookmark, nil
}

func (s *BookmarkServiceImpl) Delete(ctx context.Context, userID, bookmarkID uint) error {
	bookmark, err := s.bookmarkRepo.FindByID(bookmarkID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookmarkNotFound) {
			return apperrors.ErrBookmarkNotFound
		}
		return apperrors.InternalError(err)
	}

	if bookmark.UserID != userID {
		return apperrors.ErrBookmarkAccessDenied
	}

	if err := s.bookmarkRepo.Delete(bookmarkID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
