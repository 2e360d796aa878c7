package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"screensynced_backend/internal/models"
	"screensynced_backend/internal/repositories"
)

// fakeUserRepo - in-memory реализация UserRepository для unit-тестов сервисов.
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRefreshToken(token string) (*models.User, error) {
	if token == "" {
		return nil, repositories.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.RefreshToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateRefreshToken(userID uint, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(userID uint, avatarURL string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Avatar = avatarURL
	return nil
}

func (r *fakeUserRepo) Delete(userID uint) error {
	delete(r.users, userID)
	return nil
}

// fakeBookmarkRepo - in-memory реализация BookmarkRepository.
type fakeBookmarkRepo struct {
	bookmarks map[uint]*models.Bookmark
	nextID    uint
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: map[uint]*models.Bookmark{}, nextID: 1}
}

func (r *fakeBookmarkRepo) Create(bookmark *models.Bookmark) error {
	for _, b := range r.bookmarks {
		if b.UserID == bookmark.UserID && b.MediaID == bookmark.MediaID && b.MediaType == bookmark.MediaType {
			return repositories.ErrBookmarkAlreadyExists
		}
	}
	bookmark.ID = r.nextID
	r.nextID++
	copied := *bookmark
	r.bookmarks[bookmark.ID] = &copied
	return nil
}

func (r *fakeBookmarkRepo) FindByID(id uint) (*models.Bookmark, error) {
	b, ok := r.bookmarks[id]
	if !ok {
		return nil, repositories.ErrBookmarkNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookmarkRepo) FindByUserID(userID uint) ([]models.Bookmark, error) {
	var result []models.Bookmark
	for _, b := range r.bookmarks {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *fakeBookmarkRepo) Delete(id uint) error {
	if _, ok := r.bookmarks[id]; !ok {
		return repositories.ErrBookmarkNotFound
	}
	delete(r.bookmarks, id)
	return nil
}

// fakeFileHost имитирует файловый хостинг.
// failUpload/failRemove включают режим отказа.
type fakeFileHost struct {
	uploads    int
	removed    []string
	failUpload bool
	failRemove bool
}

func (h *fakeFileHost) Upload(ctx context.Context, base64Data, owner string) (string, error) {
	if h.failUpload {
		return "", errors.New("upload rejected")
	}
	h.uploads++
	return fmt.Sprintf("https://files.example.com/avatars/%s-%d.png", owner, h.uploads), nil
}

func (h *fakeFileHost) Remove(ctx context.Context, publicID string) error {
	if h.failRemove {
		return errors.New("remove rejected")
	}
	h.removed = append(h.removed, publicID)
	return nil
}
