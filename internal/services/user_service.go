package services

import (
	"context"
	"strings"

	"screensynced_backend/internal/auth"
	"screensynced_backend/internal/logger"
	"screensynced_backend/internal/repositories"
	"screensynced_backend/internal/services/dto"
	"screensynced_backend/internal/storage"
	"screensynced_backend/pkg/apperrors"
)

// UserService - операции над профилем аутентифицированного пользователя
type UserService interface {
	UpdateDetails(ctx context.Context, userID uint, req *dto.UpdateDetailsRequest) (*dto.PrivateUser, error)
	UpdatePassword(ctx context.Context, userID uint, req *dto.UpdatePasswordRequest) error
	UpdateAvatar(ctx context.Context, userID uint, req *dto.UpdateAvatarRequest) (*dto.PrivateUser, error)
	Delete(ctx context.Context, userID uint, req *dto.DeleteUserRequest) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	fileHost storage.FileHost
}

func NewUserService(userRepo repositories.UserRepository, fileHost storage.FileHost) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		fileHost: fileHost,
	}
}

// UpdateDetails - редактирование email и отображаемого имени
func (s *UserServiceImpl) UpdateDetails(ctx context.Context, userID uint, req *dto.UpdateDetailsRequest) (*dto.PrivateUser, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	sanitized := dto.SanitizeUser(user)
	return &sanitized, nil
}

// UpdatePassword - смена пароля при известном текущем
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, userID uint, req *dto.UpdatePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return apperrors.ErrPasswordsDoNotMatch
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return apperrors.NewForbiddenError("Invalid password")
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// UpdateAvatar - замена аватара: старый файл удаляется с хостинга,
// новый загружается, URL сохраняется в профиле.
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, userID uint, req *dto.UpdateAvatarRequest) (*dto.PrivateUser, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if user.Avatar != "" {
		if err := s.fileHost.Remove(ctx, publicIDFromURL(user.Avatar)); err != nil {
			// Старый файл останется сиротой на хостинге, замену это не блокирует
			logger.CtxWarn(ctx, "failed to remove previous avatar", "error", err.Error(), "user_id", userID)
		}
	}

	avatarURL, err := s.fileHost.Upload(ctx, req.Avatar, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.Avatar = avatarURL
	if err := s.userRepo.UpdateAvatar(userID, avatarURL); err != nil {
		return nil, apperrors.InternalError(err)
	}

	sanitized := dto.SanitizeUser(user)
	return &sanitized, nil
}

// Delete - удаление аккаунта с подтверждением пароля
func (s *UserServiceImpl) Delete(ctx context.Context, userID uint, req *dto.DeleteUserRequest) error {
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrPasswordsDoNotMatch
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return apperrors.NewForbiddenError("Invalid password")
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// publicIDFromURL извлекает public ID файла из URL хостинга:
// последний сегмент пути без расширения.
func publicIDFromURL(url string) string {
	segments := strings.Split(url, "/")
	last := segments[len(segments)-1]
	if dot := strings.LastIndex(last, "."); dot > 0 {
		return last[:dot]
	}
	return last
}
